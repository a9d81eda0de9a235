package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlview/pkg/analysis"
	"github.com/philipparndt/stlview/pkg/stl"
)

var infoEdges int

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL file",
	Long:  "Show format, triangle count, bounds, surface area, volume and the repairs made while loading.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoEdges, "edges", "n", 0, "Also list the N longest and shortest edges")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		return fmt.Errorf("failed to parse STL file: %w", err)
	}

	result := analysis.Analyze(model)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "STL File Information")
	fmt.Fprintln(out, "====================")
	if result.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", result.Name)
	}
	fmt.Fprintf(out, "File: %s\n", model.Path)
	fmt.Fprintf(out, "Format: %s\n\n", result.Format)

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n", result.SurfaceArea)
	fmt.Fprintf(out, "  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n", analysis.FormatVector(result.Center))
	fmt.Fprintf(out, "  Span: %.6f units\n", result.Span)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", result.Diagonal)

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Height (Z): %.6f units\n\n", result.Dimensions.Z)

	fmt.Fprintln(out, "Repairs:")
	fmt.Fprintf(out, "  Repaired normals: %d\n", result.Stats.RepairedNormals)
	fmt.Fprintf(out, "  Degenerate triangles: %d\n", result.Stats.DegenerateTriangles)
	fmt.Fprintf(out, "  Ignored vertices: %d\n\n", result.Stats.IgnoredVertices)

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)

	if infoEdges > 0 {
		printEdges(cmd, fmt.Sprintf("Top %d Longest Edges", infoEdges), result.LongestEdges(infoEdges))
		printEdges(cmd, fmt.Sprintf("Top %d Shortest Edges", infoEdges), result.ShortestEdges(infoEdges))
	}
	return nil
}

func printEdges(cmd *cobra.Command, title string, edges []analysis.EdgeInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s:\n", title)
	for i, e := range edges {
		fmt.Fprintf(out, "  %2d. %.6f units  %s -> %s (triangle %d)\n",
			i+1, e.Length, analysis.FormatVector(e.Start), analysis.FormatVector(e.End), e.TriangleID)
	}
}
