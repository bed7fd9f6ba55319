package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"solvency-engine/internal/advisor"
	"solvency-engine/internal/config"
	"solvency-engine/internal/credential"
	"solvency-engine/internal/engine"
	"solvency-engine/internal/logging"
	"solvency-engine/internal/model"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "solvencyctl",
		Short:         "Solvency metrics from income, expenses, debt and cash",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd())
	return root
}

type analyzeOpts struct {
	data      model.FinancialData
	document  string
	mime      string
	diagnose  bool
	architect string
	asJSON    bool
	verbose   bool

	// set holds the figures given explicitly on the command line.
	set model.InputPatch
}

func newAnalyzeCmd() *cobra.Command {
	var o analyzeOpts
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute metrics and print the dossier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.set = explicitFigures(cmd)
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), o, newAdvisor(o.verbose))
		},
	}
	f := cmd.Flags()
	f.Float64Var(&o.data.Income, "income", 0, "Monthly income")
	f.Float64Var(&o.data.Expenses, "expenses", 0, "Monthly expenses")
	f.Float64Var(&o.data.Debt, "debt", 0, "Outstanding debt")
	f.Float64Var(&o.data.Cash, "cash", 0, "Current cash balance")
	f.StringVar(&o.document, "document", "", "Document to extract figures from (explicit flags win over extracted values)")
	f.StringVar(&o.mime, "mime", "", "MIME type of --document (sniffed when empty)")
	f.BoolVar(&o.diagnose, "diagnose", false, "Request a narrative diagnosis")
	f.StringVar(&o.architect, "architect", "", "Name printed on the dossier")
	f.BoolVar(&o.asJSON, "json", false, "Print the full response as JSON")
	f.BoolVar(&o.verbose, "verbose", false, "Log advisor activity to stderr")
	return cmd
}

func newAdvisor(verbose bool) *advisor.Service {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}
	logger := logging.Discard()
	if verbose {
		logger = logging.New("debug", os.Stderr)
	}
	keys := credential.NewStore(cfg.SessionKeyFile, logging.Component(logger, "credential"))
	return advisor.NewService(advisor.NewGemini(keys, cfg.Gemini), logging.Component(logger, "advisor"))
}

// extractor is the slice of advisor.Service the CLI needs.
type extractor interface {
	engine.Diagnoser
	Extract(ctx context.Context, doc advisor.Document) (model.InputPatch, error)
}

func runAnalyze(ctx context.Context, out io.Writer, o analyzeOpts, adv extractor) error {
	if ctx == nil {
		ctx = context.Background()
	}
	data := o.data
	if o.document != "" {
		raw, err := os.ReadFile(o.document)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		mime := o.mime
		if mime == "" {
			mime = http.DetectContentType(raw)
		}
		patch, err := adv.Extract(ctx, advisor.Document{MIMEType: mime, Data: raw})
		if err != nil {
			fmt.Fprintf(os.Stderr, "extraction skipped: %v\n", err)
		}
		data = o.set.Apply(patch.Apply(model.FinancialData{}))
	}

	resp := engine.New(adv).Process(ctx, &model.AnalysisRequest{
		FinancialData: data,
		Diagnose:      o.diagnose,
		Architect:     o.architect,
	})

	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	_, err := fmt.Fprintln(out, resp.Dossier.PlainText)
	return err
}

var figureFlags = []string{"income", "expenses", "debt", "cash"}

// explicitFigures collects the figure flags the user actually passed, so an
// explicit zero still overrides an extracted value.
func explicitFigures(cmd *cobra.Command) model.InputPatch {
	var p model.InputPatch
	f := cmd.Flags()
	for _, name := range figureFlags {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetFloat64(name)
		if err != nil {
			continue
		}
		switch name {
		case "income":
			p.Income = &v
		case "expenses":
			p.Expenses = &v
		case "debt":
			p.Debt = &v
		case "cash":
			p.Cash = &v
		}
	}
	return p
}
