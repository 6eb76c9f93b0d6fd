package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pbanos/sprout/tree"
	. "github.com/smartystreets/goconvey/convey"
)

func mushroomTree() *tree.Tree {
	return tree.New(tree.NewStage(1, map[string]*tree.Node{
		"n": tree.NewLeaf(0.75, 8),
		"f": tree.NewLeaf(0.0, 3),
	}), "e", []string{"cap-shape", "odor"})
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer(t *testing.T) {
	Convey("Given a server for a tree", t, func() {
		h := New(mushroomTree(), nil).Handler()
		Convey("a known record is predicted", func() {
			w := do(h, http.MethodPost, "/predict", `{"values":["x","n"]}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			resp := &PredictResponse{}
			So(json.Unmarshal(w.Body.Bytes(), resp), ShouldBeNil)
			So(resp.Probability, ShouldEqual, 0.75)
		})
		Convey("an unseen category is unprocessable", func() {
			w := do(h, http.MethodPost, "/predict", `{"values":["x","z"]}`)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			resp := &ErrorResponse{}
			So(json.Unmarshal(w.Body.Bytes(), resp), ShouldBeNil)
			So(resp.Kind, ShouldEqual, outcomeUnseenCategory)
		})
		Convey("a record too short is unprocessable", func() {
			w := do(h, http.MethodPost, "/predict", `{"values":["x"]}`)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			resp := &ErrorResponse{}
			So(json.Unmarshal(w.Body.Bytes(), resp), ShouldBeNil)
			So(resp.Kind, ShouldEqual, outcomeAttributeOutOfRange)
		})
		Convey("a malformed body is a bad request", func() {
			w := do(h, http.MethodPost, "/predict", `{"values":`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
		Convey("the tree is served as JSON", func() {
			w := do(h, http.MethodGet, "/tree", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"positiveLabel":"e"`)
		})
		Convey("the server reports its health", func() {
			w := do(h, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})
		Convey("predictions are counted by outcome", func() {
			do(h, http.MethodPost, "/predict", `{"values":["x","n"]}`)
			do(h, http.MethodPost, "/predict", `{"values":["x","z"]}`)
			w := do(h, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := w.Body.String()
			So(body, ShouldContainSubstring, `sprout_predictions_total{outcome="ok"} 1`)
			So(body, ShouldContainSubstring, `sprout_predictions_total{outcome="unseen_category"} 1`)
		})
		Convey("concurrent predictions agree", func() {
			done := make(chan *bytes.Buffer, 8)
			for i := 0; i < 8; i++ {
				go func() {
					done <- do(h, http.MethodPost, "/predict", `{"values":["x","n"]}`).Body
				}()
			}
			for i := 0; i < 8; i++ {
				So((<-done).String(), ShouldEqual, `{"probability":0.75}`)
			}
		})
	})
}
