package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/megabites2013/n-cube/cell"
	"github.com/megabites2013/n-cube/shortcut"
	"github.com/megabites2013/n-cube/stream"
	"github.com/megabites2013/n-cube/template"
)

// openInput returns the named file, or stdin for no argument or "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// eachJSONCell decodes every non-blank line of r as a JSON cell.
func (a *app) eachJSONCell(r io.Reader, fn func(line int, v any) error) error {
	dec, err := a.cfg.Decoder()
	if err != nil {
		return err
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), a.cfg.Stream.MaxPayload)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := dec.FromJSON([]byte(text))
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(line, v); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func (a *app) encodeCmd() *cobra.Command {
	var collapse bool
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Convert JSON cells to canonical records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			return a.eachJSONCell(in, func(_ int, v any) error {
				rec, err := cell.Encode(v)
				if err != nil {
					return err
				}
				if collapse {
					rec = rec.CollapseToUISupportedTypes()
				}
				return enc.Encode(rec)
			})
		},
	}
	cmd.Flags().BoolVar(&collapse, "collapse", false, "collapse types to the ones the UI supports")
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	var edit bool
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode JSON cells and print them for display",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			out := cmd.OutOrStdout()
			return a.eachJSONCell(in, func(_ int, v any) error {
				tag, err := cell.TagOf(v)
				if err != nil {
					return err
				}
				text, err := formatValue(v, !edit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", tag, text)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&edit, "edit", false, "print the edit form instead of the display form")
	return cmd
}

func formatValue(v any, display bool) (string, error) {
	if display {
		return cell.FormatForDisplay(v)
	}
	return cell.FormatForEditing(v), nil
}

func (a *app) formatCmd(use, short string, display bool) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   use + " --type T <literal>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, err := a.cfg.Decoder()
			if err != nil {
				return err
			}
			v, err := dec.DecodeValue(typ, args[0])
			if err != nil {
				return err
			}
			text, err := formatValue(v, display)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "cell type name (see 'cellc types')")
	return cmd
}

func (a *app) streamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Read and write CR1 record streams",
	}

	write := &cobra.Command{
		Use:   "write [file]",
		Short: "Convert JSON cells to CR1 frames",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			bw := bufio.NewWriter(cmd.OutOrStdout())
			w := stream.NewWriterWithCRC(bw)
			if a.cfg.Stream.NoCRC {
				w = stream.NewWriter(bw)
			}
			if err := a.eachJSONCell(in, func(_ int, v any) error {
				return w.WriteValue(v)
			}); err != nil {
				return err
			}
			return bw.Flush()
		},
	}

	var values bool
	read := &cobra.Command{
		Use:   "read [file]",
		Short: "Print the records of a CR1 stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			r := stream.NewReader(in, a.cfg.ReaderOptions()...)
			out := cmd.OutOrStdout()
			if values {
				dec, err := a.cfg.Decoder()
				if err != nil {
					return err
				}
				vs, err := r.ReadValues(dec)
				for _, v := range vs {
					text, ferr := cell.FormatForDisplay(v)
					if ferr != nil {
						return ferr
					}
					fmt.Fprintln(out, text)
				}
				return err
			}

			enc := json.NewEncoder(out)
			frames, err := r.ReadAll()
			for _, f := range frames {
				if eerr := enc.Encode(f.Record); eerr != nil {
					return eerr
				}
			}
			return err
		},
	}
	read.Flags().BoolVar(&values, "values", false, "decode and print display text instead of records")

	cmd.AddCommand(write, read)
	return cmd
}

func (a *app) templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect and prepare template cells",
	}

	readBody := func(cmd *cobra.Command, args []string) (string, error) {
		in, err := openInput(cmd, args)
		if err != nil {
			return "", err
		}
		defer in.Close()
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}

	scan := &cobra.Command{
		Use:   "scan [file]",
		Short: "List the cubes and input coordinates a template uses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, args)
			if err != nil {
				return err
			}
			cubes := make(map[string]struct{})
			keys := make(map[string]struct{})
			template.CubeNames(body, shortcut.Analyzer{}, cubes)
			template.ScopeKeys(body, keys)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cubes: %s\n", strings.Join(sortedKeys(cubes), " "))
			fmt.Fprintf(out, "scope: %s\n", strings.Join(sortedKeys(keys), " "))
			return nil
		},
	}

	rewrite := &cobra.Command{
		Use:   "rewrite [file]",
		Short: "Expand short-cut cube references",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, args)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), template.RewriteShortcuts(body, shortcut.Analyzer{}))
			return err
		},
	}

	assemble := &cobra.Command{
		Use:   "assemble [file]",
		Short: "Rewrite a template and inject the support closures",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, args)
			if err != nil {
				return err
			}
			opts, err := a.cfg.TemplateOptions()
			if err != nil {
				return err
			}
			// Assembly never reaches the engine.
			as := template.New(nil, opts...)
			_, err = io.WriteString(cmd.OutOrStdout(), as.Assemble(body))
			return err
		},
	}

	cmd.AddCommand(scan, rewrite, assemble)
	return cmd
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List cell type names and the type each shows as in the UI",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, tag := range cell.Tags() {
				fmt.Fprintf(out, "%-10s %-10s url=%t\n", tag, tag.Collapse(), tag.AllowsURL())
			}
		},
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
