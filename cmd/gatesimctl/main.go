// Command gatesimctl drives a simulation interactively from the
// terminal: a raw-mode keyboard session toggles switches, fires
// pulses, and steps the clock by hand, printing a snapshot after every
// action.
//
// Grounded on a sample main() elsewhere in the corpus (samples/fir/main.go):
// a Builder assembles the simulated device, the program runs to
// completion, atexit.Exit(0) closes it out. Keyboard handling follows
// another corpus entry's use of eiannone/keyboard.GetSingleKey
// (cmd/lc3).
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/tebeka/atexit"

	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/driver"
	"github.com/gatesim/gatesim/kernel"
	"github.com/gatesim/gatesim/netlist"
	valgen "github.com/gatesim/gatesim/util"
	"github.com/gatesim/gatesim/value"
)

// buildDemoNetlist wires up a small default circuit so gatesimctl has
// something to drive without requiring a saved netlist file: two
// TOGGLE switches (a, b) feeding an AND gate feeding an LED, plus a
// free-standing PULSE for exercising triggerPulse.
func buildDemoNetlist() ([]component.Descriptor, []netlist.Descriptor) {
	gates := []component.Descriptor{
		{ID: "a", Type: "TOGGLE"},
		{ID: "b", Type: "TOGGLE"},
		{ID: "and1", Type: "AND"},
		{ID: "led", Type: "LED"},
		{ID: "pulse", Type: "PULSE", Params: map[string]any{"duration": 3}},
	}
	wires := []netlist.Descriptor{
		{ID: "w1", SourceGateID: "a", SourcePortIndex: 0, TargetGateID: "and1", TargetPortIndex: 0},
		{ID: "w2", SourceGateID: "b", SourcePortIndex: 0, TargetGateID: "and1", TargetPortIndex: 1},
		{ID: "w3", SourceGateID: "and1", SourcePortIndex: 0, TargetGateID: "led", TargetPortIndex: 0},
	}
	return gates, wires
}

func main() {
	k := kernel.New(kernel.DefaultConfig())

	gates, wires := buildDemoNetlist()
	if err := k.Initialize(gates, wires); err != nil {
		log.Fatalf("gatesimctl: initialize: %v", err)
	}

	d := driver.New(k, driver.PublisherFunc(printSnapshot))
	d.Start(nowMS())

	if err := keyboard.Open(); err != nil {
		log.Fatalf("gatesimctl: keyboard: %v", err)
	}
	defer keyboard.Close()

	nextGateID := valgen.MakeGateIDGen("spare")

	fmt.Println("gatesimctl: 1/2 toggle switches a/b, p triggers the pulse, n adds an unwired NOT gate, space steps once, r runs 10 steps, q quits")
	k.Run()

	for {
		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			log.Printf("gatesimctl: keyboard read: %v", err)
			break
		}
		if key == keyboard.KeyCtrlC || char == 'q' {
			break
		}

		switch char {
		case '1':
			if err := k.Toggle("a"); err != nil {
				log.Println(err)
			}
		case '2':
			if err := k.Toggle("b"); err != nil {
				log.Println(err)
			}
		case 'p':
			if err := k.TriggerPulse("pulse"); err != nil {
				log.Println(err)
			}
		case 'n':
			if err := k.AddGate(component.Descriptor{ID: nextGateID(), Type: "NOT"}); err != nil {
				log.Println(err)
			}
		case ' ':
			k.Step(1)
		case 'r':
			k.Step(10)
		default:
			continue
		}

		d.Tick(nowMS())
	}

	atexit.Exit(0)
}

func nowMS() int64 {
	return time.Now().UnixMilli()
}

func printSnapshot(s kernel.Snapshot) {
	fmt.Fprintf(os.Stdout, "t=%d ", s.Time)
	for _, g := range s.Gates {
		fmt.Fprintf(os.Stdout, "%s=%s ", g.ID, outputSummary(g.OutputStates))
	}
	fmt.Fprintln(os.Stdout)
}

func outputSummary(outs []value.State) string {
	if len(outs) == 0 {
		return "-"
	}
	s := ""
	for _, o := range outs {
		s += o.String()
	}
	return s
}
