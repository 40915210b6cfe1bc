package cli

import (
	"coordinates-service/internal/adapters/geodesy"
	"coordinates-service/internal/domain"
	"coordinates-service/internal/services"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type options struct {
	format string
	unit   string
}

// NewRootCommand builds the coordtool command tree. Output goes to the
// command's configured writer so callers can capture it.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "coordtool",
		Short: "Parse, convert and measure geographic coordinates",
		Long: `coordtool understands free-form coordinates in DEC, DMM and DMS notation
(hemisphere letters before, between or after the numbers) and Reverse Wherigo
triplets.

Examples:

  coordtool parse "N 50° 06.625' E 008° 40.928'"
  coordtool wherigo 261180 536802 118040
  coordtool distance "52.5 13.4" "48.85 2.35" --unit km
  coordtool interactive`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "DMM", "output format: DEC, DMM or DMS")

	root.AddCommand(
		newParseCommand(opts),
		newSanitizeCommand(),
		newWherigoCommand(opts),
		newDistanceCommand(opts),
		newProjectCommand(opts),
		newInteractiveCommand(),
	)
	return root
}

func (o *options) outputFormat() domain.Format {
	return domain.ParseFormat(o.format, domain.FormatDMM)
}

func newParseCommand(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "parse <text>...",
		Short: "Detect the notation of coordinates and print them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			c, notation, err := domain.Detect(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !all {
				fmt.Fprintln(out, c.Format(opts.outputFormat()))
				return nil
			}
			fmt.Fprintf(out, "notation: %s\n", notation)
			fmt.Fprintf(out, "DEC:      %s\n", c.StringDEC())
			fmt.Fprintf(out, "DMM:      %s\n", c.StringDMM())
			fmt.Fprintf(out, "DMS:      %s\n", c.StringDMS())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "print the detected notation and every format")
	return cmd
}

func newSanitizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <text>...",
		Short: "Print the normalized form the parser works on",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), domain.Sanitize(strings.Join(args, " ")))
			return nil
		},
	}
}

func newWherigoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "wherigo <a> <b> <c>",
		Short: "Decode a Reverse Wherigo triplet",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var vars [3]int
			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil || v < 0 {
					return fmt.Errorf("wherigo: %q is not a non-negative integer", arg)
				}
				vars[i] = v
			}

			c := domain.FromReverseWherigo(vars[0], vars[1], vars[2])
			fmt.Fprintln(cmd.OutOrStdout(), c.Format(opts.outputFormat()))
			return nil
		},
	}
}

func newDistanceCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distance <from> <to>",
		Short: "Print the geodesic distance and initial bearing between two points",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}

			r := services.DistanceBearing(geodesy.NewWGS84(), from, to)
			unit := domain.ParseDistanceUnit(opts.unit, domain.UnitMeters)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (bearing %.2f°)\n", r.Distance.Format(unit), r.Bearing)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.unit, "unit", "u", "m", "distance unit: m, km, ft or mi")
	return cmd
}

func newProjectCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project <from> <bearing> <distance>",
		Short: "Print the point reached from a start point along a bearing",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := domain.FromString(args[0])
			if err != nil {
				return fmt.Errorf("from: %w", err)
			}
			bearing, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("bearing %q: %w", args[1], err)
			}
			meters, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("distance %q: %w", args[2], err)
			}

			d := domain.NewDistance(meters, domain.ParseDistanceUnit(opts.unit, domain.UnitMeters))
			to := services.Project(geodesy.NewWGS84(), from, bearing, d)
			fmt.Fprintln(cmd.OutOrStdout(), to.Format(opts.outputFormat()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.unit, "unit", "u", "m", "unit of the distance argument: m, km, ft or mi")
	return cmd
}

func newInteractiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Type coordinates and watch them parse as you go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newInteractiveModel(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err := p.Run()
			return err
		},
	}
}

func parsePair(a, b string) (domain.Coordinates, domain.Coordinates, error) {
	from, errFrom := domain.FromString(a)
	to, errTo := domain.FromString(b)
	if errFrom != nil || errTo != nil {
		var errs []error
		if errFrom != nil {
			errs = append(errs, fmt.Errorf("from: %w", errFrom))
		}
		if errTo != nil {
			errs = append(errs, fmt.Errorf("to: %w", errTo))
		}
		return domain.Coordinates{}, domain.Coordinates{}, errors.Join(errs...)
	}
	return from, to, nil
}
