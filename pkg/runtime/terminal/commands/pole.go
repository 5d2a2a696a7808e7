package commands

import (
	"fmt"
	"strconv"

	"github.com/de-tools/geff/pkg/services/eop"
	"github.com/spf13/cobra"
)

type PoleCmd struct {
	opts *Options
}

func NewPoleCmd(opts *Options) *cobra.Command {
	pc := &PoleCmd{opts: opts}
	return &cobra.Command{
		Use:   "pole <mjd>",
		Short: "Look up the pole coordinates for a Modified Julian Day",
		Args:  cobra.ExactArgs(1),
		RunE:  pc.run,
	}
}

func (pc *PoleCmd) run(cmd *cobra.Command, args []string) error {
	mjd := args[0]
	if _, err := strconv.ParseUint(mjd, 10, 32); err != nil {
		return fmt.Errorf("invalid mjd %q: must be a whole day number", mjd)
	}

	ctx, cfg, err := pc.opts.loadConfig(cmd.Context(), "")
	if err != nil {
		return err
	}

	lookup, err := eop.NewClient(cfg.EOP.Endpoint, cfg.EOP.Timeout).QueryPoleCoordinates(ctx, mjd)
	if err != nil {
		return err
	}
	return pc.opts.Console.HandlePole(mjd, lookup)
}
