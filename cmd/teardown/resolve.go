package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/teardown/internal/engine/resolver"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [component...]",
		Short: "Show which scene meshes component identifiers resolve to",
		Long: `Resolve component identifiers against the scene's mesh names, using the
product metadata for aliases. Without arguments, every identifier of the
plan sequence is resolved.

  teardown resolve --scene kettle.yaml Lid_Assembly handle
  teardown resolve --scene kettle.yaml --plan plan.json --metadata meta.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.loadInputs(false)
			if err != nil {
				return err
			}
			if in.sceneErr != nil {
				return fmt.Errorf("loading scene: %w", in.sceneErr)
			}

			ids := args
			if len(ids) == 0 && in.plan != nil {
				ids = in.plan.Sequence
			}
			if len(ids) == 0 {
				return errors.New("no component identifiers given")
			}

			out := cmd.OutOrStdout()
			banner(out, "resolve")
			meshes := in.scene.Meshes()
			descriptors := in.meta.Descriptors()

			unresolved := 0
			for _, id := range ids {
				nodes := resolver.Resolve(id, meshes, descriptors)
				if len(nodes) == 0 {
					unresolved++
				}
				fmt.Fprintf(out, "  %s %s %s %s\n",
					statusIcon(len(nodes) > 0),
					part.Sprint(id),
					subtle.Sprint("->"),
					joinOr(meshNames(nodes), "no matching mesh"),
				)
				if aliases := resolver.Aliases(id, descriptors); len(aliases) > 0 {
					fmt.Fprintf(out, "      %s\n", subtle.Sprintf("aliases: %s", joinOr(aliases, "")))
				}
			}

			fmt.Fprintln(out)
			if unresolved > 0 {
				warn.Fprintf(out, "  %d of %d identifiers did not resolve\n", unresolved, len(ids))
			} else {
				good.Fprintf(out, "  all %d identifiers resolved\n", len(ids))
			}
			return nil
		},
	}
}
