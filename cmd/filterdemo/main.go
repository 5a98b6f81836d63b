/*
filterdemo is the command-line demonstration harness spec.md places out of
the caching decision tree's core scope (§1, "command-line demonstration
harness"). It wires together the sample predicates package and the reference
in-memory cache to show a FilterTree matching a handful of bid requests
against a handful of campaigns, and reports the tree's materialized shape.

Grounded on wayneeseguin/graft's cmd/graft/main.go flag-struct convention
(github.com/voxelbrain/goptions).
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/voxelbrain/goptions"

	"github.com/go-cftree/filtertree"
	"github.com/go-cftree/filtertree/memcache"
	"github.com/go-cftree/filtertree/predicates"
)

type options struct {
	RangeMin       int    `goptions:"--range-min, description='lower bound of the request range'"`
	RangeMax       int    `goptions:"--range-max, description='upper bound of the request range'"`
	AcceptedConsts string `goptions:"--accepted, description='comma-separated accepted constants (ONE,TWO,THREE,FOUR)'"`
	ShowTree       bool   `goptions:"--show-tree, description='print the materialized cache tree after matching'"`
	Help           bool   `goptions:"--help, -h"`
}

func parseConsts(csv string) []predicates.Creative {
	if csv == "" {
		return nil
	}
	names := map[string]predicates.Creative{
		"ONE":   predicates.CreativeOne,
		"TWO":   predicates.CreativeTwo,
		"THREE": predicates.CreativeThree,
		"FOUR":  predicates.CreativeFour,
	}
	var out []predicates.Creative
	for _, name := range strings.Split(csv, ",") {
		if c, ok := names[strings.ToUpper(strings.TrimSpace(name))]; ok {
			out = append(out, c)
		}
	}
	return out
}

func sampleCampaigns() []predicates.Campaign {
	return []predicates.Campaign{
		{ID: "A", RangeVal: 4, Const: predicates.CreativeOne},
		{ID: "B", RangeVal: 5, Const: predicates.CreativeOne},
		{ID: "C", RangeVal: 10, Const: predicates.CreativeTwo},
	}
}

func main() {
	opts := options{RangeMin: 5, RangeMax: 10}
	if err := goptions.Parse(&opts); err != nil || opts.Help {
		goptions.PrintHelp()
		if err != nil {
			os.Exit(1)
		}
		return
	}

	pipe, err := filtertree.NewPipeline(
		filtertree.NewStep[predicates.Campaign, predicates.BidRequest](
			predicates.RangeLookup{}, memcache.New[predicates.Campaign, predicates.BidRequest]()),
		filtertree.NewStep[predicates.Campaign, predicates.BidRequest](
			predicates.MembershipLookup{}, memcache.New[predicates.Campaign, predicates.BidRequest]()),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid pipeline:", err)
		os.Exit(1)
	}

	ft, err := filtertree.New(pipe, sampleCampaigns())
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid tree:", err)
		os.Exit(1)
	}

	req := predicates.BidRequest{
		Key:            "demo",
		RangeMin:       opts.RangeMin,
		RangeMax:       opts.RangeMax,
		AcceptedConsts: parseConsts(opts.AcceptedConsts),
	}
	frame, err := ft.Matches(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "match failed:", err)
		os.Exit(1)
	}

	fmt.Printf("%s matched %d candidate(s):\n", ft.Describe(), frame.Len())
	for _, c := range frame.Slice() {
		fmt.Printf("  %s (range=%d, const=%s)\n", c.ID, c.RangeVal, c.Const)
	}
	if opts.ShowTree {
		fmt.Println(filtertree.Sprint(ft))
	}
}
