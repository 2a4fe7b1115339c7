// Command demo runs a traffic-light machine on a real ticker, printing its
// structure as DOT every cycle until twelve cycles have elapsed or the
// process receives an interrupt.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	hfsm "github.com/hzj-learn/HFSM"
	"github.com/hzj-learn/HFSM/internal/report"
)

type Intersection struct {
	cycle int
}

type Traffic struct{ hfsm.Base[*Intersection] }

type Red struct{ hfsm.Base[*Intersection] }

func (s *Red) Transition(i *Intersection, c hfsm.Control) { hfsm.ChangeTo[*Green](c) }

type Green struct{ hfsm.Base[*Intersection] }

func (s *Green) Transition(i *Intersection, c hfsm.Control) { hfsm.ChangeTo[*Yellow](c) }

type Yellow struct{ hfsm.Base[*Intersection] }

func (s *Yellow) Transition(i *Intersection, c hfsm.Control) { hfsm.ChangeTo[*Red](c) }

func main() {
	intersection := &Intersection{}
	apex := hfsm.Composite[*Intersection](&Traffic{},
		hfsm.Leaf[*Intersection](&Red{}),
		hfsm.Leaf[*Intersection](&Green{}),
		hfsm.Leaf[*Intersection](&Yellow{}),
	)

	root, err := hfsm.New(intersection, apex)
	if err != nil {
		panic(err)
	}
	defer root.Close()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			intersection.cycle++
			if err := root.Update(); err != nil {
				panic(err)
			}

			fmt.Printf("\n--- cycle %d ---\n", intersection.cycle)
			fmt.Println("DOT:")
			fmt.Println(dotOf(root))

			if intersection.cycle >= 12 {
				fmt.Println("demo complete after 12 cycles.")
				return
			}
		case <-sig:
			fmt.Println("\nshutting down gracefully...")
			return
		}
	}
}

func dotOf(root *hfsm.Root[*Intersection]) string {
	return report.ExportDOT("traffic_light", root.Structure())
}
