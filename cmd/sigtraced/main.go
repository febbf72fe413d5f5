package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/sigtrace/sigtrace.go/pkg/channel"
	"github.com/sigtrace/sigtrace.go/pkg/device/sim"
	fx "github.com/sigtrace/sigtrace.go/pkg/framework"
	"github.com/sigtrace/sigtrace.go/pkg/trace"
)

func init() {
	trace.SetupFlags()
	channel.SetupFlags()
	sim.SetupFlags()
}

func main() {
	flag.Parse()

	runner := fx.NewRunner().HandleSignals()

	link := channel.NewConfig().MustNewLink()
	if err := link.Open(runner.Context); err != nil {
		log.Fatalln(err)
	}
	defer link.Close()

	port := sim.NewPort(0xff)
	reset := &sim.ResetLine{}
	pipeline, err := trace.NewConfig().NewPipeline(port, trace.NewWallClock(), link)
	if err != nil {
		log.Fatalln(err)
	}
	if err = pipeline.WithResetLine(reset).Startup(runner.Context); err != nil {
		log.Fatalln(err)
	}

	loop := fx.NewLoop().Add(pipeline)
	loop.AddRunnable(sim.NewConfig().NewScript(port))

	runner.Go(loop)
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
