package commands

import (
	"github.com/de-tools/geff/pkg/services/projectfile"
	"github.com/spf13/cobra"
)

type InspectCmd struct {
	opts *Options
}

func NewInspectCmd(opts *Options) *cobra.Command {
	ic := &InspectCmd{opts: opts}
	return &cobra.Command{
		Use:   "inspect <file.fg5>",
		Short: "Print the measurement start and set counts of a project file",
		Args:  cobra.ExactArgs(1),
		RunE:  ic.run,
	}
}

func (ic *InspectCmd) run(_ *cobra.Command, args []string) error {
	path := args[0]
	extractor := projectfile.NewExtractor()

	tv, err := extractor.ExtractTimestamp(path)
	if err != nil {
		return err
	}
	counts, err := extractor.ExtractSetCounts(path)
	if err != nil {
		return err
	}

	return ic.opts.Console.HandleMetadata(path, tv, counts)
}
