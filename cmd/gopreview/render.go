package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/philipparndt/gopreview/pkg/geometry"
	"github.com/philipparndt/gopreview/pkg/scene"
	"github.com/philipparndt/gopreview/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	renderOutput    string
	renderWidth     int
	renderHeight    int
	renderOrbitLeft int
	renderOrbitUp   int
	renderPanLeft   int
	renderPanUp     int
	renderZoom      float64
	renderWireframe bool
	renderOverlay   bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document to a PNG image",
	Long: `Render the scene with the software renderer. The camera starts at the
document's first perspective view and can be moved in orbit and pan steps
(negative counts move the opposite way) and zoomed by wheel deltas
(120 per notch).`,
	Args: cobra.ExactArgs(1),
	Run:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "preview.png", "Output PNG file")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Image width (default from config)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Image height (default from config)")
	renderCmd.Flags().IntVar(&renderOrbitLeft, "orbit-left", 0, "Orbit steps to the left")
	renderCmd.Flags().IntVar(&renderOrbitUp, "orbit-up", 0, "Orbit steps up")
	renderCmd.Flags().IntVar(&renderPanLeft, "pan-left", 0, "Pan steps to the left")
	renderCmd.Flags().IntVar(&renderPanUp, "pan-up", 0, "Pan steps up")
	renderCmd.Flags().Float64Var(&renderZoom, "zoom", 0, "Zoom by a wheel delta")
	renderCmd.Flags().BoolVarP(&renderWireframe, "wireframe", "w", false, "Draw triangle edges")
	renderCmd.Flags().BoolVar(&renderOverlay, "overlay", false, "Draw the document properties")
}

// repeat applies step |n| times, in the positive direction when n > 0
func repeat(n int, positive, negative scene.Direction, step func(scene.Direction) error) error {
	d := positive
	if n < 0 {
		d, n = negative, -n
	}
	for range n {
		if err := step(d); err != nil {
			return err
		}
	}
	return nil
}

// moveCamera applies the render command's camera steps to s
func moveCamera(s *scene.Scene) error {
	cam := s.Camera
	orbit := func(d scene.Direction) error { return cam.Orbit(d, s.BoundingBox) }

	if err := repeat(renderOrbitLeft, scene.DirectionLeft, scene.DirectionRight, orbit); err != nil {
		return err
	}
	if err := repeat(renderOrbitUp, scene.DirectionUp, scene.DirectionDown, orbit); err != nil {
		return err
	}
	if err := repeat(renderPanLeft, scene.DirectionLeft, scene.DirectionRight, cam.Pan); err != nil {
		return err
	}
	if err := repeat(renderPanUp, scene.DirectionUp, scene.DirectionDown, cam.Pan); err != nil {
		return err
	}
	cam.Zoom(renderZoom)
	return nil
}

func runRender(cmd *cobra.Command, args []string) {
	cfg.Resolve(cfgFlags(renderWidth, renderHeight))

	s := loadScene(cmd.Context(), args[0])
	if err := moveCamera(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error moving camera: %v\n", err)
		os.Exit(1)
	}

	opts := viewer.DefaultRenderOptions(cfg.Render.Width, cfg.Render.Height)
	opts.Background = cfg.Background()
	opts.Wireframe = renderWireframe || cfg.Render.Wireframe
	if renderOverlay {
		opts.Overlay = s.Properties()
	}

	img := viewer.Render(s, opts)

	f, err := os.Create(renderOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %dx%d to %s\n", opts.Width, opts.Height, renderOutput)
	fmt.Printf("Camera: %s looking %s\n", formatVector(s.Camera.Position), formatVector(s.Camera.Look))
}

func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
