package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apitree/apitree/parser"
	"github.com/apitree/apitree/resolver"
)

func parseDoc(t *testing.T, src string) *parser.Document {
	t.Helper()
	doc, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestBuildMinimal(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /pets:
    get:
      tags: [Pets]
      summary: List pets
      operationId: listPets
      responses:
        "200":
          description: OK
`)
	tags := Build(doc)

	require.Len(t, tags, 1)
	assert.Equal(t, "Pets", tags[0].Name)

	require.Len(t, tags[0].Paths, 1)
	assert.Equal(t, "/pets", tags[0].Paths[0].Path)

	require.Len(t, tags[0].Paths[0].Endpoints, 1)
	endpoint := tags[0].Paths[0].Endpoints[0]
	assert.Equal(t, "get", endpoint.Verb)
	assert.Equal(t, "GET", endpoint.Method())
	assert.Equal(t, "/pets", endpoint.Path)
	assert.Equal(t, "Pets", endpoint.Tag)
	assert.Equal(t, "List pets", endpoint.Summary)
	assert.Equal(t, "listPets", endpoint.OperationID)
	assert.NotNil(t, endpoint.Raw, "raw operation fragment is kept for diagnostics")
	assert.Empty(t, endpoint.Parameters)
	assert.Nil(t, endpoint.RequestBody)
	assert.NotNil(t, endpoint.Responses)
}

func TestTagOrdering(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /z:
    get:
      tags: [Zebra]
      responses: {"200": {description: OK}}
  /a:
    get:
      tags: [Alpha]
      responses: {"200": {description: OK}}
`)
	tags := Build(doc)

	require.Len(t, tags, 2)
	assert.Equal(t, "Alpha", tags[0].Name, "tags must sort by label, not encounter order")
	assert.Equal(t, "Zebra", tags[1].Name)
}

func TestUntaggedOperations(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /health:
    get:
      responses: {"200": {description: OK}}
  /empty-tag:
    get:
      tags: [""]
      responses: {"200": {description: OK}}
`)
	tags := Build(doc)

	require.Len(t, tags, 1)
	assert.Equal(t, parser.UntaggedLabel, tags[0].Name)
	assert.Len(t, tags[0].Paths, 2)
}

func TestSamePathDifferentTags(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /pets:
    get:
      tags: [Read]
      responses: {"200": {description: OK}}
    post:
      tags: [Write]
      responses: {"201": {description: Created}}
`)
	tags := Build(doc)

	require.Len(t, tags, 2)
	assert.Equal(t, "Read", tags[0].Name)
	assert.Equal(t, "Write", tags[1].Name)

	// Same path string, but PathNodes are tag-scoped: one per tag.
	require.Len(t, tags[0].Paths, 1)
	require.Len(t, tags[1].Paths, 1)
	assert.Equal(t, "/pets", tags[0].Paths[0].Path)
	assert.Equal(t, "/pets", tags[1].Paths[0].Path)
	assert.NotSame(t, tags[0].Paths[0], tags[1].Paths[0])
}

func TestSameTagReusesPathNode(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /pets:
    get:
      tags: [Pets]
      responses: {"200": {description: OK}}
    delete:
      tags: [Pets]
      responses: {"204": {description: Deleted}}
`)
	tags := Build(doc)

	require.Len(t, tags, 1)
	require.Len(t, tags[0].Paths, 1, "same path under the same tag reuses its PathNode")
	require.Len(t, tags[0].Paths[0].Endpoints, 2)
	assert.Equal(t, "get", tags[0].Paths[0].Endpoints[0].Verb)
	assert.Equal(t, "delete", tags[0].Paths[0].Endpoints[1].Verb)
}

func TestPathOrderWithinTag(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /zoo:
    get:
      tags: [All]
      responses: {"200": {description: OK}}
  /alpha:
    get:
      tags: [All]
      responses: {"200": {description: OK}}
`)
	tags := Build(doc)

	require.Len(t, tags, 1)
	require.Len(t, tags[0].Paths, 2)
	assert.Equal(t, "/zoo", tags[0].Paths[0].Path, "paths keep first-seen order, not sorted")
	assert.Equal(t, "/alpha", tags[0].Paths[1].Path)
}

func TestVerbFiltering(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /pets:
    summary: path level summary
    parameters: []
    x-internal: true
    get:
      responses: {"200": {description: OK}}
    GET2: {responses: {}}
    servers: []
`)
	tags := Build(doc)

	require.Len(t, tags, 1)
	require.Len(t, tags[0].Paths, 1)
	require.Len(t, tags[0].Paths[0].Endpoints, 1)
	assert.Equal(t, "get", tags[0].Paths[0].Endpoints[0].Verb)
}

func TestUppercaseVerbKey(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /pets:
    POST:
      tags: [Pets]
      responses: {"201": {description: Created}}
`)
	tags := Build(doc)

	require.Len(t, tags, 1)
	require.Len(t, tags[0].Paths[0].Endpoints, 1)
	assert.Equal(t, "post", tags[0].Paths[0].Endpoints[0].Verb,
		"method keys are lower-cased before matching")
}

func TestMalformedShapes(t *testing.T) {
	t.Run("paths is a sequence", func(t *testing.T) {
		doc := parseDoc(t, "openapi: 3.0.0\npaths: [1, 2]\n")
		assert.Empty(t, Build(doc))
	})

	t.Run("paths is null", func(t *testing.T) {
		doc := parseDoc(t, "openapi: 3.0.0\npaths: null\n")
		assert.Empty(t, Build(doc))
	})

	t.Run("non-mapping path item is skipped", func(t *testing.T) {
		doc := parseDoc(t, `openapi: 3.0.0
paths:
  /bad: 42
  /good:
    get:
      responses: {"200": {description: OK}}
`)
		tags := Build(doc)
		require.Len(t, tags, 1)
		require.Len(t, tags[0].Paths, 1)
		assert.Equal(t, "/good", tags[0].Paths[0].Path)
	})

	t.Run("non-mapping operation is skipped", func(t *testing.T) {
		doc := parseDoc(t, `openapi: 3.0.0
paths:
  /pets:
    get: not-an-operation
    post:
      responses: {"201": {description: Created}}
`)
		tags := Build(doc)
		require.Len(t, tags, 1)
		require.Len(t, tags[0].Paths[0].Endpoints, 1)
		assert.Equal(t, "post", tags[0].Paths[0].Endpoints[0].Verb)
	})
}

func TestOperationResolution(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /pets/{id}:
    get:
      tags: [Pets]
      parameters:
        - $ref: '#/components/parameters/PetID'
        - name: verbose
          in: query
          schema: {type: boolean}
        - $ref: '#/components/parameters/Missing'
      responses:
        "200":
          $ref: '#/components/responses/PetResponse'
    put:
      tags: [Pets]
      requestBody:
        content:
          application/json:
            schema: {$ref: '#/components/schemas/Pet'}
      responses:
        "200":
          description: OK
components:
  parameters:
    PetID:
      name: id
      in: path
      required: true
      schema: {type: integer}
  responses:
    PetResponse:
      description: A pet
      content:
        application/json:
          schema: {$ref: '#/components/schemas/Pet'}
  schemas:
    Pet:
      type: object
      properties:
        id: {type: integer}
`)
	tags := Build(doc)
	require.Len(t, tags, 1)
	endpoints := tags[0].Endpoints()
	require.Len(t, endpoints, 2)

	get := endpoints[0]
	require.Equal(t, "get", get.Verb)

	// $ref parameter resolved, inline kept, broken ref dropped.
	require.Len(t, get.Parameters, 2)
	first, ok := get.Parameters[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "id", first["name"])
	assert.NotContains(t, first, "$ref")

	// Responses resolve as one fragment, including nested schema refs.
	responses, ok := get.Responses.(map[string]any)
	require.True(t, ok)
	resp200, ok := responses["200"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A pet", resp200["description"])
	schema := resp200["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])

	put := endpoints[1]
	require.Equal(t, "put", put.Verb)
	body, ok := put.RequestBody.(map[string]any)
	require.True(t, ok)
	bodySchema := body["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)
	assert.Equal(t, "object", bodySchema["type"])
}

func TestSharedResolver(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /pets:
    get:
      responses:
        "200": {$ref: '#/components/responses/OK'}
components:
  responses:
    OK: {description: OK}
`)
	res := resolver.New(doc)
	tags := Build(doc, WithResolver(res))
	require.Len(t, tags, 1)

	// The shared resolver's cache was warmed by the build.
	resolved, err := res.Lookup("#/components/responses/OK")
	require.NoError(t, err)
	assert.Equal(t, "OK", resolved.(map[string]any)["description"])
}
