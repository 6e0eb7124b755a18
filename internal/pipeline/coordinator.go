// Package pipeline implements the Coordinator (§5): the Ingested -> Aligned
// -> Translated -> Diffed -> Placed -> Reported state machine driven over a
// worker pool. The fan-out/fan-in shape is grounded on the teacher's
// internal/annotate/parallel.go (ParallelAnnotate + OrderedCollect), here
// generalized from a raw sync.WaitGroup/channel pair to golang.org/x/sync's
// errgroup so a single query's invariant violation cancels every other
// worker instead of leaking a goroutine. Tree placement happens inside the
// worker pool (read-only, §4.9); tree growth (AttachLeaf) is reserved for
// the single-threaded reduction pass that follows, per §5's "never attach
// concurrently with placement."
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nextgenomics/nextplace/internal/align"
	"github.com/nextgenomics/nextplace/internal/analyze"
	"github.com/nextgenomics/nextplace/internal/errs"
	"github.com/nextgenomics/nextplace/internal/fasta"
	"github.com/nextgenomics/nextplace/internal/gene"
	"github.com/nextgenomics/nextplace/internal/logging"
	"github.com/nextgenomics/nextplace/internal/params"
	"github.com/nextgenomics/nextplace/internal/report"
	"github.com/nextgenomics/nextplace/internal/seq"
	"github.com/nextgenomics/nextplace/internal/translate"
	"github.com/nextgenomics/nextplace/internal/tree"
)

// Task is one query assigned a sequence number, so results can be
// reassembled in input order regardless of which worker finishes first.
type Task struct {
	Seq  int
	Name string
	Raw  string
}

// workerResult carries everything the single-threaded reduction pass needs
// for one query, successful or not.
type workerResult struct {
	Seq       int
	Name      string
	Align     *align.Result
	Assembled analyze.Assembled
	Mutations []tree.Mutation
	Placement *tree.PlacementResult
	Fail      *errs.NonFatal
}

// Coordinator holds the read-only resources every worker shares (§5 "Shared
// immutable resources"): the reference sequence, gene map, precomputed
// reference peptides, and seed index are built once and never mutated after
// NewCoordinator returns.
type Coordinator struct {
	ref         seq.NucSequence
	genes       gene.Map
	refPeptides map[string]seq.AASequence
	seedIndex   *align.SeedIndex
	refTree     *tree.Tree // nil disables placement/attachment entirely
	params      params.Params
	logger      *zap.Logger
}

// NewCoordinator builds the shared per-run resources and returns a ready
// Coordinator. refTree may be nil to run alignment/translation/diffing
// without phylogenetic placement (e.g. a standalone annotation pass).
func NewCoordinator(ref seq.NucSequence, genes gene.Map, refTree *tree.Tree, p params.Params, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Coordinator{
		ref:         ref,
		genes:       genes,
		refPeptides: translate.BuildReferencePeptides(ref, genes, p.TranslatePastStop),
		seedIndex:   align.BuildSeedIndex(ref, p.SeedLength),
		refTree:     refTree,
		params:      p,
		logger:      logger,
	}
}

// Run drains records through the worker pool and returns one Report per
// query, in input order. A fatal error (ctx cancellation, a read error from
// records, or an invariant violation surfaced by any worker) aborts the
// whole run; per-query failures never do (§7).
func (c *Coordinator) Run(ctx context.Context, records *fasta.Reader) ([]*report.Report, error) {
	runID := uuid.NewString()
	c.logger.Info("run started", zap.String("runId", runID))

	workers := c.params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tasks := make(chan Task)
	resultsCh := make(chan workerResult, 2*workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(tasks)
		seqNum := 0
		for {
			rec, err := records.Next()
			if err != nil {
				return fmt.Errorf("read query %d: %w", seqNum, err)
			}
			if rec == nil {
				return nil
			}
			select {
			case tasks <- Task{Seq: seqNum, Name: rec.Name, Raw: rec.Sequence}:
				seqNum++
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				select {
				case t, ok := <-tasks:
					if !ok {
						return nil
					}
					wr, fatal := c.process(t)
					if fatal != nil {
						return fatal
					}
					select {
					case resultsCh <- wr:
					case <-gctx.Done():
						return gctx.Err()
					}
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})
	}

	var runErr error
	done := make(chan struct{})
	go func() {
		runErr = g.Wait()
		close(resultsCh)
		close(done)
	}()

	ordered, collectErr := collectOrdered(resultsCh)
	<-done
	if runErr != nil {
		return nil, runErr
	}
	if collectErr != nil {
		return nil, collectErr
	}

	reports := c.reduce(ordered)
	for _, r := range reports {
		r.RunID = runID
	}
	c.logger.Info("run finished", zap.String("runId", runID), zap.Int("queries", len(reports)))
	return reports, nil
}

// collectOrdered buffers out-of-order results and returns them sorted by
// sequence number, mirroring the teacher's OrderedCollect technique but
// materializing the slice instead of calling back per result, since the
// reduction pass below needs every result before it can attach leaves.
func collectOrdered(resultsCh <-chan workerResult) ([]workerResult, error) {
	pending := make(map[int]workerResult)
	nextSeq := 0
	var ordered []workerResult

	for r := range resultsCh {
		pending[r.Seq] = r
		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			ordered = append(ordered, rr)
			nextSeq++
		}
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("pipeline: %d results never reached their sequence slot (coordinator bug)", len(pending))
	}
	return ordered, nil
}

// process runs one query through Ingested -> Aligned -> Translated ->
// Diffed -> Placed. Invariant violations panicked by the core algorithms
// are recovered here, at the task boundary (§7), and surfaced as a fatal
// error that cancels the whole run rather than as a per-query failure.
func (c *Coordinator) process(t Task) (res workerResult, fatal error) {
	defer func() {
		if r := recover(); r != nil {
			inv, ok := r.(*errs.Invariant)
			if !ok {
				panic(r)
			}
			c.logger.Error("invariant violation", zap.String("query", t.Name), zap.String("message", inv.Message))
			fatal = inv
		}
	}()

	res.Seq = t.Seq
	res.Name = t.Name

	query, err := seq.ParseNucSequence(t.Raw)
	if err != nil {
		res.Fail = &errs.NonFatal{Stage: errs.StageIngest, Kind: "invalid_letter", Query: t.Name, Err: err}
		c.logger.Warn("query failed", logging.NonFatalFields(res.Fail)...)
		return res, nil
	}

	alignResult, err := align.Align(c.ref, query, c.seedIndex, c.params)
	if err != nil {
		res.Fail = &errs.NonFatal{Stage: errs.StageAlign, Kind: "alignment_failed", Query: t.Name, Err: err}
		c.logger.Warn("query failed", logging.NonFatalFields(res.Fail)...)
		return res, nil
	}
	res.Align = alignResult

	peptides, transFails := translate.Translate(alignResult.AlignedQuery, alignResult.AlignmentRange, c.genes, c.refPeptides, c.params)
	for _, f := range transFails {
		f.Query = t.Name
		c.logger.Warn("translation failure", logging.NonFatalFields(f)...)
	}

	frameShifts := translate.DetectFrameShifts(alignResult, c.genes)

	nucDiff := analyze.DiffNucleotides(alignResult)

	aaDiffs := make(map[string]analyze.AADiff, len(peptides))
	for _, gp := range peptides {
		g, ok := c.genes.Get(gp.Gene)
		errs.Check(ok, "gene %q returned by Translate absent from gene map", gp.Gene)
		aaDiffs[gp.Gene] = analyze.DiffAminoAcids(gp, g, alignResult.AlignmentRange, alignResult.AlignedRef, alignResult.AlignedQuery)
	}

	res.Assembled = analyze.Assemble(nucDiff, peptides, aaDiffs, frameShifts)

	res.Mutations = make([]tree.Mutation, 0, len(nucDiff.Substitutions))
	for _, s := range nucDiff.Substitutions {
		res.Mutations = append(res.Mutations, tree.Mutation{Ref: s.Ref, Pos: s.Pos, Qry: s.Query})
	}

	if c.refTree != nil {
		p := tree.PlaceQuery(c.refTree, res.Mutations)
		res.Placement = &p
	}

	return res, nil
}

// reduce runs the single-threaded tail of the state machine: build the
// final report for every query, and grow the tree with each successfully
// placed query's full mutation set as a new leaf (§4.9 "Attach the query as
// a new leaf"). Attachment happens strictly after every placement has been
// computed against the original tree, so a query's placement is never
// influenced by another query attached earlier in the same run.
func (c *Coordinator) reduce(ordered []workerResult) []*report.Report {
	reports := make([]*report.Report, 0, len(ordered))
	for _, res := range ordered {
		if res.Fail != nil {
			reports = append(reports, &report.Report{
				Name:    res.Name,
				State:   string(res.Fail.Stage),
				Failure: report.FromNonFatal(res.Fail),
			})
			continue
		}

		var nearestLabel, clade string
		if res.Placement != nil {
			nearest := c.refTree.Node(res.Placement.NearestNodeID)
			nearestLabel = nearest.Label
			clade = nearest.Clade
			c.refTree.AttachLeaf(res.Placement.NearestNodeID, res.Name, res.Mutations)
		}

		reports = append(reports, report.Build(res.Name, res.Align, res.Assembled, res.Placement, nearestLabel, clade))
	}
	return reports
}
