package goembed

import (
	"github.com/datar-psa/goembed/api"
)

type TextEmbeddingGenerator = api.TextEmbeddingGenerator
type EmbeddingClient = api.EmbeddingClient
type Attributes = api.Attributes
type Attribute = api.Attribute
type GenerateOption = api.GenerateOption

const ModelIDKey = api.ModelIDKey

var WithKernel = api.WithKernel
