package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gpuctx/backend/scripted"
	"github.com/gogpu/gpuctx/dom"
	"github.com/gogpu/gpuctx/internal/config"
	"github.com/gogpu/gpuctx/shader"
	"github.com/gogpu/gputypes"
)

func newInitCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Acquire a GPU context on an in-memory document",
		Example: "  gpuctx init\n" +
			"  gpuctx init --platform scripted --fail primary-gpu:adapter\n" +
			"  gpuctx init --shader shaders/blit.wgsl",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyInitFlags(cmd, cfg)
			return runInit(cmd.Context(), *cfg, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.String("platform", cfg.Platform, "Platform: wgpu|scripted")
	f.StringSlice("backend", cfg.Backends, "Backend order")
	f.String("power", cfg.PowerPreference, "Power preference: none|low-power|high-performance")
	f.String("label", cfg.Label, "Device label")
	f.StringArray("fail", nil, "Inject a failure into the scripted platform (backend:stage, repeatable)")
	f.String("shader", "", "WGSL shader to fetch and compile (path, file:// or http(s):// URL)")
	f.String("shader-root", cfg.ShaderRoot, "Directory relative shader paths resolve against")
	f.Bool("skip-validation", false, "Skip shader IR validation")
	f.Bool("debug", false, "Enable GPU validation layers")
	f.Bool("trace-driver", false, "Send wgpu driver logs to the gpuctx logger")
	return cmd
}

// applyInitFlags overrides cfg with the flags set on the command line.
func applyInitFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("platform") {
		cfg.Platform, _ = f.GetString("platform")
	}
	if f.Changed("backend") {
		cfg.Backends, _ = f.GetStringSlice("backend")
	}
	if f.Changed("power") {
		cfg.PowerPreference, _ = f.GetString("power")
	}
	if f.Changed("label") {
		cfg.Label, _ = f.GetString("label")
	}
	if f.Changed("fail") {
		cfg.Fail, _ = f.GetStringArray("fail")
	}
	if f.Changed("shader") {
		cfg.Shader, _ = f.GetString("shader")
	}
	if f.Changed("shader-root") {
		cfg.ShaderRoot, _ = f.GetString("shader-root")
	}
	if f.Changed("skip-validation") {
		cfg.SkipValidation, _ = f.GetBool("skip-validation")
	}
	if f.Changed("debug") {
		cfg.Debug, _ = f.GetBool("debug")
	}
	if f.Changed("trace-driver") {
		cfg.TraceDriver, _ = f.GetBool("trace-driver")
	}
}

// runInit acquires a context as cfg describes and reports it to out.
func runInit(ctx context.Context, cfg config.Config, out io.Writer) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := selectPlatform(cfg)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, gpuctx.WithPlatform(p))

	doc := dom.NewDocument()
	gc, err := gpuctx.New(ctx, doc, doc.Body(), opts...)
	if err != nil {
		reportFailure(out, err)
		return err
	}
	defer func() {
		if cerr := gc.Close(); err == nil {
			err = cerr
		}
	}()

	reportContext(out, gc)

	if cfg.Shader == "" {
		return nil
	}
	return loadShader(ctx, cfg, gc, out)
}

// selectPlatform builds the platform named by cfg.
func selectPlatform(cfg config.Config) (gpuctx.Platform, error) {
	switch cfg.Platform {
	case scripted.Name:
		p := scripted.New()
		for _, s := range cfg.Fail {
			f, err := scripted.ParseFault(s)
			if err != nil {
				return nil, err
			}
			f.Apply(p)
		}
		return p, nil
	case gpuctx.PlatformWGPU, "":
		if len(cfg.Fail) > 0 {
			return nil, errors.New("--fail requires --platform scripted")
		}
		return newWGPUPlatform(cfg)
	default:
		return nil, fmt.Errorf("unknown platform %q (available: wgpu, scripted)", cfg.Platform)
	}
}

func reportContext(out io.Writer, gc *gpuctx.GraphicsContext) {
	info := gc.GPUInfo()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "backend:\t%s\n", gc.Backend())
	fmt.Fprintf(tw, "adapter:\t%s (%s, %s)\n", info.Name, info.DeviceType, info.Backend)
	if info.Driver != "" {
		fmt.Fprintf(tw, "driver:\t%s %s\n", info.Driver, info.DriverInfo)
	}
	fmt.Fprintf(tw, "format:\t%s\n", gc.SurfaceFormat())
	_ = tw.Flush()
	printLimits(out, gc.Limits())
}

// reportFailure prints every failed attempt, oldest first.
func reportFailure(out io.Writer, err error) {
	var ne *gpuctx.NegotiationError
	if !errors.As(err, &ne) {
		return
	}
	for _, prev := range ne.Superseded {
		fmt.Fprintf(out, "attempt %s: %s\n", prev.Backend, describe(prev))
	}
	fmt.Fprintf(out, "attempt %s: %s\n", ne.Backend, describe(ne))
}

func describe(e *gpuctx.NegotiationError) string {
	if e.Err == nil {
		return e.Stage.String() + " failed"
	}
	return e.Stage.String() + " failed: " + e.Err.Error()
}

func loadShader(ctx context.Context, cfg config.Config, gc *gpuctx.GraphicsContext, out io.Writer) error {
	src, err := shader.NewResolver(nil, cfg.ShaderRoot).Fetch(ctx, cfg.Shader)
	if err != nil {
		return err
	}
	spirv, err := shader.CompileWithOptions(src, shader.Options{
		Validate: !cfg.SkipValidation,
		Debug:    cfg.Debug,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "shader:  %s (%d words)\n", cfg.Shader, len(spirv))
	return createShaderModule(gc, cfg.Shader, spirv)
}

// printLimits prints the limits most relevant to a WebGL2 class device.
func printLimits(out io.Writer, l gputypes.Limits) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "limits:")
	rows := []struct {
		name  string
		value uint64
	}{
		{"max_texture_dimension_2d", uint64(l.MaxTextureDimension2D)},
		{"max_texture_array_layers", uint64(l.MaxTextureArrayLayers)},
		{"max_bind_groups", uint64(l.MaxBindGroups)},
		{"max_uniform_buffers_per_shader_stage", uint64(l.MaxUniformBuffersPerShaderStage)},
		{"max_uniform_buffer_binding_size", uint64(l.MaxUniformBufferBindingSize)},
		{"max_storage_buffers_per_shader_stage", uint64(l.MaxStorageBuffersPerShaderStage)},
		{"max_vertex_buffers", uint64(l.MaxVertexBuffers)},
		{"max_vertex_attributes", uint64(l.MaxVertexAttributes)},
		{"max_buffer_size", l.MaxBufferSize},
		{"max_color_attachments", uint64(l.MaxColorAttachments)},
		{"max_compute_invocations_per_workgroup", uint64(l.MaxComputeInvocationsPerWorkgroup)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%d\n", r.name, r.value)
	}
	_ = tw.Flush()
}
