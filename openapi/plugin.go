package openapi

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/sirupsen/logrus"

	fs "github.com/reoring/fieldshape"
)

// ErrUnsupportedType is returned for values that are not schema classes or
// schema instances.
var ErrUnsupportedType = errors.New("openapi: unsupported type")

// Plugin turns schema classes into OpenAPI component schemas.
//
// A Plugin remembers which component name it gave each schema class, so the
// same plugin should be used for every call that writes into one
// components map. It is safe for concurrent use.
type Plugin struct {
	// FieldRequiredForJSONSchema lists only fields declared Required in
	// "required". When false every retained field is required.
	FieldRequiredForJSONSchema bool
	// Resolver defaults to the schema's own resolver, if it has one, and
	// otherwise to the built-in dispatch table.
	Resolver *fs.Resolver
	// Logger defaults to a discarding logger.
	Logger logrus.FieldLogger

	mu    sync.Mutex
	names map[fs.SchemaClass]string
}

// NewPlugin returns a plugin over the built-in resolver.
func NewPlugin(fieldRequired bool) *Plugin {
	return &Plugin{FieldRequiredForJSONSchema: fieldRequired}
}

// IsPluginSupportedType reports whether v is a schema class or instance.
func IsPluginSupportedType(v any) bool { return fs.IsSchemaRef(v) }

// IsUndefinedSentinel is always false: schemas have no undefined marker.
func IsUndefinedSentinel(any) bool { return false }

// IsConstrainedField is always false: field constraints are not rendered.
func IsConstrainedField(fs.FieldType) bool { return false }

type resolverHolder interface {
	Resolver() *fs.Resolver
}

// resolverFor prefers the plugin's resolver, then the one cls was built
// with, then the built-in table.
func (p *Plugin) resolverFor(cls fs.SchemaClass) *fs.Resolver {
	if p.Resolver != nil {
		return p.Resolver
	}
	if h, ok := cls.(resolverHolder); ok {
		return h.Resolver()
	}
	return fs.DefaultResolver()
}

func (p *Plugin) logger() logrus.FieldLogger {
	if p.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		p.Logger = l
	}
	return p.Logger
}

func (p *Plugin) options() fs.Options {
	return fs.Options{UseDeclaredRequired: p.FieldRequiredForJSONSchema, RemoveExcluded: true}
}

// ToOpenAPISchema registers the schema behind ref (and every schema it
// nests) in components and returns a reference to it.
func (p *Plugin) ToOpenAPISchema(ref fs.SchemaRef, components openapi3.Schemas) (*openapi3.SchemaRef, error) {
	if components == nil {
		return nil, errors.New("openapi: components map is nil")
	}
	cls := fs.ClassOf(ref)
	if cls == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, ref)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.names == nil {
		p.names = map[fs.SchemaClass]string{}
	}
	return p.component(cls, components), nil
}

// component returns a reference to cls, building its component first when
// it is not registered in components yet. The component is recorded before
// its properties are built so that cycles terminate.
func (p *Plugin) component(cls fs.SchemaClass, components openapi3.Schemas) *openapi3.SchemaRef {
	if name, ok := p.names[cls]; ok && components[name] != nil {
		return openapi3.NewSchemaRef(ComponentPrefix+name, components[name].Value)
	}
	name := cls.ClassName()
	for i := 2; components[name] != nil; i++ {
		name = cls.ClassName() + strconv.Itoa(i)
	}
	p.names[cls] = name
	value := &openapi3.Schema{
		Type:       types(openapi3.TypeObject),
		Title:      cls.ClassName(),
		Properties: openapi3.Schemas{},
	}
	components[name] = &openapi3.SchemaRef{Value: value}

	sum := p.resolverFor(cls).Introspect(cls, p.options())
	log := p.logger().WithField("schema", cls.ClassName())
	for _, f := range sum.Fields {
		if _, ok := f.Type.(fs.Opaque); ok {
			log.WithField("field", f.Name).Debug("field resolved to an unconstrained schema")
		}
		prop := typeSchema(f.Type, func(c fs.SchemaClass) *openapi3.SchemaRef {
			return p.component(c, components)
		})
		if f.Field != nil && (f.Field.Description != "" || f.Field.Default != nil) && prop.Ref == "" {
			prop.Value.Description = f.Field.Description
			prop.Value.Default = f.Field.Default
		}
		value.Properties[f.Name] = prop
	}
	value.Required = sum.RequiredSorted()
	log.WithField("component", name).Debug("registered component schema")
	return openapi3.NewSchemaRef(ComponentPrefix+name, value)
}

// AppConfig is the part of an application configuration plugins extend.
type AppConfig struct {
	Plugins []any
}

// InitPlugin installs a schema Plugin at application start.
type InitPlugin struct {
	FieldRequiredForJSONSchema bool
	Logger                     logrus.FieldLogger
}

// OnAppInit appends a schema plugin to cfg and returns cfg.
func (ip InitPlugin) OnAppInit(cfg *AppConfig) *AppConfig {
	cfg.Plugins = append(cfg.Plugins, &Plugin{
		FieldRequiredForJSONSchema: ip.FieldRequiredForJSONSchema,
		Logger:                     ip.Logger,
	})
	return cfg
}
