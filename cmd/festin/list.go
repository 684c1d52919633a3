package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/festin"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := festin.BucketFilter{Limit: c.Limit}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}
	if c.Bucket != "" {
		filter.BucketName = &c.Bucket
	}

	buckets, err := deps.Buckets.FindBuckets(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", festin.ErrorMessage(err))
		return err
	}

	if len(buckets) == 0 {
		fmt.Fprintln(deps.Stdout, "No buckets found. Use 'festin scan' to discover some.")
		return nil
	}

	for _, b := range buckets {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d objects\n", b.RunID, b.Domain, b.BucketName, len(b.Objects))
		if c.Full {
			for _, obj := range b.Objects {
				fmt.Fprintf(deps.Stdout, "    %s\n", obj)
			}
		}
	}

	return nil
}

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, festin.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", festin.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		finished := "running"
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %v\n", r.ID, r.StartedAt.Format(time.RFC3339), finished, r.Seeds)
	}

	return nil
}
