package main

import (
	"context"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-bindable/bindable"
	"github.com/urfave/cli/v3"
)

const (
	updatesKey  = "updates"
	intervalKey = "interval"
)

// roomState is the model a sync layer would keep fresh from a remote
// source; here a ticker loop plays that role.
type roomState struct {
	Occupancy int
	Topic     string
}

type header struct {
	title string
}

type badge struct {
	count *int
}

type statusLine struct {
	text *string
}

func main() {
	cmd := &cli.Command{
		Name:  "demo",
		Usage: "Drive bound UI-style labels from a fake sync feed",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  updatesKey,
				Usage: "Number of updates to push",
				Value: 5,
			},
			&cli.DurationFlag{
				Name:  intervalKey,
				Usage: "Delay between updates",
				Value: 200 * time.Millisecond,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Demo started!")
	defer func() {
		log.Printf("Demo finished in %v", time.Since(start))
	}()

	state := bindable.Of(roomState{Occupancy: 3, Topic: "lobby"})

	hdr := &header{}
	bindable.Bind(state,
		func(r roomState) string { return r.Topic },
		hdr,
		func(h *header, s string) { h.title = s },
	)

	bdg := &badge{}
	bindable.BindOptional(state,
		func(r roomState) int { return r.Occupancy },
		bdg,
		func(b *badge, n *int) { b.count = n },
	)

	status := &statusLine{}
	bindable.BindTransform(state,
		func(r roomState) int { return r.Occupancy },
		status,
		func(s *statusLine, t *string) { s.text = t },
		func(n int) *string {
			if n == 0 {
				return nil // empty room renders no status at all
			}
			t := strconv.Itoa(n) + " online"
			return &t
		},
	)

	log.Printf("bound %d subscriptions, header=%q badge=%d status=%q",
		state.Subscribers(), hdr.title, *bdg.count, *status.text)

	ticker := time.NewTicker(cmd.Duration(intervalKey))
	defer ticker.Stop()

	updates := int(cmd.Uint(updatesKey))
	for i := 1; i <= updates; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		state.Set(roomState{Occupancy: 3 + i, Topic: "lobby"})
		log.Printf("update %d: badge=%d status=%q", i, *bdg.count, *status.text)
	}

	// drop the badge; the next update prunes its subscription
	bdg = nil
	runtime.GC()
	runtime.GC()

	state.Set(roomState{Occupancy: 0, Topic: "lobby"})
	log.Printf("after teardown: %d live subscriptions, status cleared=%v",
		state.Subscribers(), status.text == nil)

	runtime.KeepAlive(hdr)
	runtime.KeepAlive(status)
	return nil
}
