package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nextgenomics/nextplace/internal/fasta"
	"github.com/nextgenomics/nextplace/internal/gene"
	"github.com/nextgenomics/nextplace/internal/genemap"
	"github.com/nextgenomics/nextplace/internal/logging"
	"github.com/nextgenomics/nextplace/internal/pipeline"
	"github.com/nextgenomics/nextplace/internal/report"
	"github.com/nextgenomics/nextplace/internal/seq"
	"github.com/nextgenomics/nextplace/internal/tree"
	"github.com/nextgenomics/nextplace/internal/treestore"
)

// newRunCmd is the analysis entry point: align every query in an input
// FASTA against a reference, translate genes, diff nucleotides and amino
// acids, and (if a reference tree is given) place each query on it. Flags
// mirror cmd/vibe-vep annotate's shape (input argument, -o/--output), with
// the GENCODE cache flags replaced by this tool's reference/genemap/tree
// inputs.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input-fasta>",
		Short: "Align, translate, diff, and place query sequences",
		Args:  cobra.ExactArgs(1),
		Example: `  nextplace run queries.fasta --reference ref.fasta --genemap genes.gff3
  nextplace run - --reference ref.fasta --genemap genes.gff3 --tree tree.json`,
		RunE: runAnalyze,
	}

	flags := cmd.Flags()
	flags.String("reference", "", "reference FASTA file (required)")
	flags.String("genemap", "", "gene map file, GTF/GFF3 attribute syntax (required)")
	flags.String("tree", "", "reference phylogenetic tree, Auspice-style JSON (optional)")
	flags.String("tree-cache", "", "DuckDB file caching the parsed reference tree (optional)")
	flags.StringP("output", "o", "-", "output file for JSON reports, one indented document per query (default: stdout)")
	flags.Int("workers", 0, "worker pool size (default: runtime.NumCPU())")

	flags.Int("scoring.match", 0, "override: match score")
	flags.Int("scoring.mismatch", 0, "override: mismatch penalty")
	flags.Int("scoring.gapOpen", 0, "override: gap-open penalty")
	flags.Int("scoring.gapExtend", 0, "override: gap-extend penalty")
	flags.Bool("translatePastStop", false, "translate past the first stop codon instead of padding with gaps")

	for _, name := range []string{"reference", "genemap", "tree", "tree-cache", "output", "workers"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	_ = viper.BindPFlag("scoring.match", flags.Lookup("scoring.match"))
	_ = viper.BindPFlag("scoring.mismatch", flags.Lookup("scoring.mismatch"))
	_ = viper.BindPFlag("scoring.gapOpen", flags.Lookup("scoring.gapOpen"))
	_ = viper.BindPFlag("scoring.gapExtend", flags.Lookup("scoring.gapExtend"))
	_ = viper.BindPFlag("translatePastStop", flags.Lookup("translatePastStop"))

	_ = cmd.MarkFlagRequired("reference")
	_ = cmd.MarkFlagRequired("genemap")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	logger, err := logging.New(logging.Config{
		Level:  viper.GetString("log.level"),
		Pretty: viper.GetBool("log.pretty"),
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	ref, refLen, err := loadReference(viper.GetString("reference"))
	if err != nil {
		return fmt.Errorf("load reference: %w", err)
	}

	genes, err := loadGeneMap(viper.GetString("genemap"), refLen)
	if err != nil {
		return fmt.Errorf("load gene map: %w", err)
	}

	refTree, err := loadTree(viper.GetString("tree"), viper.GetString("tree-cache"), logger)
	if err != nil {
		return fmt.Errorf("load reference tree: %w", err)
	}

	p := paramsFromViper()

	coord := pipeline.NewCoordinator(ref, genes, refTree, p, logger)

	reader, err := fasta.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input %q: %w", inputPath, err)
	}
	defer reader.Close()

	out, closeOut, err := openOutput(viper.GetString("output"))
	if err != nil {
		return err
	}
	defer closeOut()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reports, err := coord.Run(ctx, reader)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	for _, r := range reports {
		line, err := report.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal report for %q: %w", r.Name, err)
		}
		if _, err := out.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return nil
}

func loadReference(path string) (seq.NucSequence, int, error) {
	if path == "" {
		return seq.NucSequence{}, 0, fmt.Errorf("--reference is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return seq.NucSequence{}, 0, err
	}
	defer f.Close()

	rec, err := fasta.ReadOne(f)
	if err != nil {
		return seq.NucSequence{}, 0, err
	}
	if rec == nil {
		return seq.NucSequence{}, 0, fmt.Errorf("reference file %q has no records", path)
	}

	ref, err := seq.ParseNucSequence(rec.Sequence)
	if err != nil {
		return seq.NucSequence{}, 0, err
	}
	return ref, ref.Len(), nil
}

func loadGeneMap(path string, refLen int) (gene.Map, error) {
	if path == "" {
		return gene.Map{}, fmt.Errorf("--genemap is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return gene.Map{}, err
	}
	defer f.Close()
	return genemap.Parse(f, refLen)
}

// loadTree parses the reference tree, preferring a valid DuckDB cache over
// re-parsing the JSON document: the cache mirrors the teacher's transcript
// cache's fingerprint-gated invalidation (internal/duckdb/transcript_cache.go),
// repurposed in internal/treestore for tree nodes.
func loadTree(treePath, cachePath string, logger *zap.Logger) (*tree.Tree, error) {
	if treePath == "" {
		return nil, nil
	}

	if cachePath == "" {
		f, err := os.Open(treePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return tree.ParseTree(f)
	}

	store, err := treestore.Open(cachePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	fp, err := treestore.FingerprintOf(treePath)
	if err != nil {
		return nil, err
	}

	if store.Valid(fp) {
		logger.Info("using cached reference tree", zap.String("cache", cachePath))
		return store.Load()
	}

	f, err := os.Open(treePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := tree.ParseTree(f)
	if err != nil {
		return nil, err
	}

	if err := store.Save(t, fp); err != nil {
		return nil, fmt.Errorf("cache reference tree: %w", err)
	}
	return t, nil
}
