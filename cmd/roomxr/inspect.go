package main

import (
	"fmt"

	"github.com/gekko3d/roomxr/engine/assets"
	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <model.glb|model.gltf>",
		Short: "Print bounds and mesh statistics of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := assets.GLTFSource{}.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer model.Dispose()

			s := assets.Inspect(model)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:       %s\n", args[0])
			fmt.Fprintf(out, "nodes:      %d\n", s.Nodes)
			fmt.Fprintf(out, "meshes:     %d\n", s.Meshes)
			fmt.Fprintf(out, "triangles:  %d\n", s.Triangles)
			fmt.Fprintf(out, "geometries: %d\n", s.Geometries)
			fmt.Fprintf(out, "materials:  %d\n", s.Materials)
			if s.Bounds.IsEmpty() {
				fmt.Fprintln(out, "bounds:     empty")
				return nil
			}
			size := s.Bounds.Size()
			fmt.Fprintf(out, "bounds:     min %v max %v\n", s.Bounds.Min, s.Bounds.Max)
			fmt.Fprintf(out, "size:       %.3f x %.3f x %.3f\n", size.X(), size.Y(), size.Z())
			return nil
		},
	}
}
