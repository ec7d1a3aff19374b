package main

import (
	"github.com/freetocompute/mindboard/pkg/board/server"
)

func main() {
	s := &server.Server{}
	s.Init()
	s.Run()
}
