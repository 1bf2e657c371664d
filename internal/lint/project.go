package lint

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cameronsjo/boxes/internal/boxfile"
)

// ComposeFileName is the file name a project's document renders to.
const ComposeFileName = "docker-compose.yml"

// DockerfileName returns the file name an image manifest renders to.
func DockerfileName(image string) string {
	return image + ".Dockerfile"
}

// Project renders and checks every image and the document of p. The
// document is finalized as a side effect of rendering it.
func Project(ctx context.Context, p *boxfile.Project, workingDir string) ([]Finding, error) {
	names := p.ImageNames()
	perImage := make([][]Finding, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		m, _ := p.Image(name)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perImage[i] = Dockerfile(DockerfileName(name), m.Render())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var findings []Finding
	for _, f := range perImage {
		findings = append(findings, f...)
	}
	findings = append(findings, Compose(ctx, ComposeFileName, p.Document.Render(), workingDir)...)
	findings = append(findings, Dependencies(ComposeFileName, p.Document)...)
	return findings, nil
}
