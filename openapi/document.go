package openapi

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pkg/errors"

	fs "github.com/reoring/fieldshape"
)

// Document builds a validated OpenAPI 3.0 document whose components hold
// every schema reachable from refs.
func (p *Plugin) Document(ctx context.Context, title, version string, refs ...fs.SchemaRef) (*openapi3.T, error) {
	schemas := make(openapi3.Schemas)
	for _, ref := range refs {
		if _, err := p.ToOpenAPISchema(ref, schemas); err != nil {
			return nil, err
		}
	}
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Components: &openapi3.Components{
			Schemas: schemas,
		},
		Paths: openapi3.NewPaths(),
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, errors.Wrap(err, "openapi: invalid document")
	}
	return doc, nil
}
