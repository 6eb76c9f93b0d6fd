/*
Package plot renders curves of points in the unit square, such as ROC or
PR curves, as PNG images.
*/
package plot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/pbanos/sprout/benchmark"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// Width of the rendered images in pixels
	Width = 800
	// Height of the rendered images in pixels
	Height = 600
)

/*
Series takes a caption, labels for the axes and a slice of points and
returns a plot with a red line through the points over the [0, 1] x [0, 1]
square. Points with a NaN coordinate are left out.
*/
func Series(caption, xLabel, yLabel string, points []benchmark.Point) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = caption
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Min, p.X.Max = 0.0, 1.0
	p.Y.Min, p.Y.Max = 0.0, 1.0
	xys := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) {
			continue
		}
		xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
	}
	if len(xys) == 0 {
		return p, nil
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("plotting %s: %v", caption, err)
	}
	line.LineStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(line)
	return p, nil
}

// WritePNG renders the plot as a Width x Height PNG image on the writer
func WritePNG(p *gplot.Plot, w io.Writer) error {
	c := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseImage(image.NewRGBA(image.Rect(0, 0, Width, Height))))}
	p.Draw(draw.New(c))
	_, err := c.WriteTo(w)
	return err
}

/*
SaveSeries takes a file path, a caption, axis labels and points and writes
the PNG image of their plot to the file.
*/
func SaveSeries(path, caption, xLabel, yLabel string, points []benchmark.Point) error {
	p, err := Series(caption, xLabel, yLabel, points)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}
	err = WritePNG(p, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// SaveROC writes the ROC curve of the given points to a PNG file
func SaveROC(path string, points []benchmark.Point) error {
	return SaveSeries(path, "ROC curve", "False positive rate", "True positive rate", points)
}

// SavePR writes the PR curve of the given points to a PNG file
func SavePR(path string, points []benchmark.Point) error {
	return SaveSeries(path, "PR curve", "Precision", "Recall", points)
}
