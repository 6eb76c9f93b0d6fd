/*
Package queue defines the tasks workers perform to grow a tree
concurrently, as well as an interface for a Queue to manage them.

It also provides an in-memory implementation of the Queue interface
*/
package queue
