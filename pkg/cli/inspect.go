package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/dblp"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdDiff() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Print the changed lines of diff JSON documents",
		ArgsUsage: "<file.json>...",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return goerr.New("no diff file given", goerr.T(types.ErrTagMalformedInput))
			}

			changes, err := loadChanges(c.Args().Slice())
			if err != nil {
				return err
			}

			w := c.Root().Writer
			paths := make([]string, 0, len(changes))
			for path := range changes {
				paths = append(paths, path)
			}
			sort.Strings(paths)

			for _, path := range paths {
				dimColor.Fprintln(w, path)
				for _, rec := range changes[path] {
					switch rec.Kind {
					case model.ChangeAdded:
						passColor.Fprintf(w, "+%s\n", rec.Content)
					case model.ChangeDeleted:
						failColor.Fprintf(w, "-%s\n", rec.Content)
					default:
						fmt.Fprintf(w, " %s\n", rec.Content)
					}
				}
			}
			return nil
		},
	}
}

func cmdTranslate() *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Usage:     "Print the DBLP person page of faculty names",
		ArgsUsage: "<name>...",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return goerr.New("no name given", goerr.T(types.ErrTagMalformedInput))
			}

			w := c.Root().Writer
			for _, name := range c.Args().Slice() {
				fmt.Fprintf(w, "%s\t%s\n", name, dblp.Translate(name).URL)
			}
			return nil
		},
	}
}
