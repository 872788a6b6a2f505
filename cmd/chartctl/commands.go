package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrkim-kr/echarts-ai-studio/config"
	"github.com/jrkim-kr/echarts-ai-studio/internal/bootstrap"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/composer"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
	genhttp "github.com/jrkim-kr/echarts-ai-studio/internal/generation/http"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/response"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/service"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/tabular"
)

type generateOpts struct {
	requirement string
	data        string
	dataFile    string
	sheet       string
	image       string
	previous    string
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var (
		pretty     bool
		provider   string
		vocabulary string
	)

	root := &cobra.Command{
		Use:          "chartctl",
		Short:        "Generate and check ECharts specifications",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	root.PersistentFlags().StringVar(&provider, "provider", "", "Model provider: openai or gemini (default: LLM_PROVIDER)")
	root.PersistentFlags().StringVar(&vocabulary, "vocabulary", "", "Keyword vocabulary YAML (default: embedded)")
	root.SetIn(in)
	root.SetOut(out)

	buildGenerator := func(cmd *cobra.Command) (*service.Generator, error) {
		cfg := config.LoadLLM()
		if provider != "" {
			cfg.Provider = strings.ToLower(provider)
		}
		vocab, err := bootstrap.LoadVocabulary(vocabulary)
		if err != nil {
			return nil, err
		}
		return bootstrap.BuildGenerator(cmd.Context(), cfg, vocab, nil, nil)
	}
	write := func(cmd *cobra.Command, v any) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	}

	var g generateOpts
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a chart from a requirement and data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := g.request()
			if err != nil {
				return err
			}
			gen, err := buildGenerator(cmd)
			if err != nil {
				return err
			}
			res, err := gen.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return write(cmd, genhttp.NewResultView(res))
		},
	}
	generate.Flags().StringVarP(&g.requirement, "requirement", "r", "", "What the chart should show")
	generate.Flags().StringVarP(&g.data, "data", "d", "", "Inline data")
	generate.Flags().StringVar(&g.dataFile, "data-file", "", "Data file: .xlsx or plain text")
	generate.Flags().StringVar(&g.sheet, "sheet", "", "Sheet to read from an .xlsx data file (default: first)")
	generate.Flags().StringVar(&g.image, "image", "", "Reference image to extract data from")
	generate.Flags().StringVar(&g.previous, "previous", "", "JSON file with the chart to refine")

	literal := &cobra.Command{
		Use:   "literal <file|->",
		Short: "Load a pasted option literal as a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			gen, err := buildGenerator(cmd)
			if err != nil {
				return err
			}
			res, err := gen.LoadLiteral(cmd.Context(), string(code))
			if err != nil {
				return err
			}
			return write(cmd, genhttp.NewResultView(res))
		},
	}

	normalize := &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Apply display layout rules to a JSON chart specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			spec, err := response.Parse(string(b))
			if err != nil {
				return err
			}
			return write(cmd, response.Normalize(spec))
		},
	}

	root.AddCommand(generate, literal, normalize)
	return root
}

func (g generateOpts) request() (service.Request, error) {
	req := service.Request{Requirement: g.requirement, Data: g.data}

	if g.dataFile != "" {
		text, err := readDataFile(g.dataFile, g.sheet)
		if err != nil {
			return req, err
		}
		if strings.TrimSpace(req.Data) != "" {
			req.Data += "\n"
		}
		req.Data += text
	}

	if g.image != "" {
		f, err := os.Open(g.image)
		if err != nil {
			return req, fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		img, err := composer.EncodeImage(f, "")
		if err != nil {
			return req, err
		}
		req.Image = img
	}

	if g.previous != "" {
		b, err := os.ReadFile(g.previous)
		if err != nil {
			return req, fmt.Errorf("read previous chart: %w", err)
		}
		var prev domain.Spec
		if err := json.Unmarshal(b, &prev); err != nil {
			return req, fmt.Errorf("previous chart is not a JSON object: %w", err)
		}
		req.Previous = prev
	}
	return req, nil
}

func readDataFile(path, sheet string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return tabular.ReadXLSX(f, sheet)
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read data file: %w", err)
	}
	return string(b), nil
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}
