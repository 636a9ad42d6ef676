package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"launchdash/internal/dashboard"
	"launchdash/internal/figure"
	"launchdash/internal/render"
	"launchdash/internal/tui"
	"launchdash/internal/web"
)

// shutdownTimeout bounds graceful HTTP shutdown after a signal.
const shutdownTimeout = 5 * time.Second

// Export file names.
const (
	exportPage    = "dashboard.html"
	exportPie     = "pie.png"
	exportScatter = "scatter.png"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := a.usesRouter(&cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				return a.serve(cmd, addr)
			}
			return a.runServe(cmd, args)
		},
	})
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides host and port)")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	return a.serve(cmd, a.cfg.Addr())
}

func (a *app) serve(cmd *cobra.Command, addr string) error {
	srv := web.NewServer(a.router, addr, a.logger)
	return srv.Run(cmd.Context(), shutdownTimeout)
}

func newTUICmd(a *app) *cobra.Command {
	return a.usesRouter(&cobra.Command{
		Use:   "tui",
		Short: "Show the dashboard in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), a.router)
		},
	})
}

func newExportCmd(a *app) *cobra.Command {
	var (
		out    string
		width  int
		height int
	)
	cmd := a.usesRouter(&cobra.Command{
		Use:   "export",
		Short: "Write a static snapshot of the dashboard",
		Long: `Writes dashboard.html, pie.png and scatter.png for the default selection
(all sites, full payload range) into the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			return a.export(cmd, out, width, height)
		},
	})
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	cmd.Flags().IntVar(&width, "width", render.DefaultWidth, "PNG width in pixels")
	cmd.Flags().IntVar(&height, "height", render.DefaultHeight, "PNG height in pixels")
	return cmd
}

func (a *app) export(cmd *cobra.Command, dir string, width, height int) error {
	figs, err := a.router.Initial(cmd.Context())
	if err != nil {
		return err
	}
	pie := figs[dashboard.ID{Component: dashboard.PieChart, Property: dashboard.PropFigure}]
	scatter := figs[dashboard.ID{Component: dashboard.ScatterChart, Property: dashboard.PropFigure}]

	g, _ := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var buf bytes.Buffer
		err := render.WritePage(&buf, a.router.Layout().Title, []render.Panel{
			{ID: dashboard.PieChart, Figure: pie},
			{ID: dashboard.ScatterChart, Figure: scatter},
		})
		if err != nil {
			return err
		}
		return a.writeFile(filepath.Join(dir, exportPage), buf.Bytes())
	})
	for name, fig := range map[string]figure.Figure{exportPie: pie, exportScatter: scatter} {
		g.Go(func() error {
			var buf bytes.Buffer
			if err := render.PNG(&buf, fig, width, height); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return a.writeFile(filepath.Join(dir, name), buf.Bytes())
		})
	}
	return g.Wait()
}

func (a *app) writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.logger.Info("exported", zap.String("file", path), zap.Int("bytes", len(data)))
	return nil
}
