package cli

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/aoi-dev/shiprel/pkg/cli/config"
	"github.com/aoi-dev/shiprel/pkg/domain/interfaces"
	"github.com/aoi-dev/shiprel/pkg/infra/github"
	"github.com/aoi-dev/shiprel/pkg/usecase"
)

func cmdPublish() *cli.Command {
	var (
		githubCfg  config.GitHub
		releaseCfg config.Release
		configPath string
	)

	flags := append(githubCfg.Flags(), releaseCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "config",
		Usage:       "Path to a TOML config file providing defaults",
		Destination: &configPath,
		Sources:     cli.EnvVars("SHIPREL_CONFIG"),
	})

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Resolve or create a tagged release and upload assets to it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if configPath != "" {
				file, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				file.ApplyTo(&githubCfg, &releaseCfg)
				logger.Debug("loaded config file", "path", configPath)
			}

			repo, err := githubCfg.Coordinates()
			if err != nil {
				return err
			}

			req, err := releaseCfg.Request()
			if err != nil {
				return err
			}

			var source interfaces.ClientSource
			if releaseCfg.DryRun {
				color.Yellow("dry-run: no remote call will be made")
			} else {
				cred, err := githubCfg.Credential()
				if err != nil {
					return err
				}

				registry := github.NewRegistry()
				source = func(host string) (interfaces.ReleaseClient, error) {
					return registry.Get(host, cred)
				}
			}

			logger.Info("publishing release",
				slog.String("repo", githubCfg.Repo),
				slog.String("version", releaseCfg.Version),
				slog.Bool("dry_run", releaseCfg.DryRun),
			)

			uc := usecase.NewPublisher(source,
				usecase.WithDryRun(releaseCfg.DryRun),
			)

			assets, err := uc.Publish(ctx, repo, req, releaseCfg.Assets)
			if err != nil {
				return err
			}

			if releaseCfg.DryRun {
				color.Yellow("dry-run: release %s would be published to %s", req.TagName(), githubCfg.Repo)
				return nil
			}

			color.Green("published release %s to %s (%d assets)", req.TagName(), githubCfg.Repo, len(assets))
			for _, a := range assets {
				color.Green("  %s  %s", a.Name, a.URL)
			}
			return nil
		},
	}
}
