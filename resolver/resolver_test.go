package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apitree/apitree/parser"
	"github.com/apitree/apitree/specerrors"
)

// parseDoc parses a YAML document, failing the test on error.
func parseDoc(t *testing.T, src string) *parser.Document {
	t.Helper()
	doc, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

// requireMapKey extracts a map[string]any value from parent[key], failing
// the test with a clear message if the key is missing or has the wrong type.
func requireMapKey(t *testing.T, parent map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := parent[key]
	require.True(t, ok, "expected key %q to exist", key)
	m, ok := v.(map[string]any)
	require.True(t, ok, "expected %q to be map[string]any, got %T", key, v)
	return m
}

// assertNoRefs walks a resolved fragment and fails if any $ref key remains
// outside a circular sentinel.
func assertNoRefs(t *testing.T, fragment any) {
	t.Helper()
	switch v := fragment.(type) {
	case map[string]any:
		if _, hasRef := v["$ref"]; hasRef {
			circular, _ := v[CircularKey].(bool)
			assert.True(t, circular, "found $ref outside a circular sentinel: %v", v)
			return
		}
		for _, val := range v {
			assertNoRefs(t, val)
		}
	case []any:
		for _, elem := range v {
			assertNoRefs(t, elem)
		}
	}
}

func TestResolveScalarsUnchanged(t *testing.T) {
	doc := parseDoc(t, "openapi: 3.0.0\npaths: {}\n")
	r := New(doc)

	assert.Equal(t, "hello", r.Resolve("hello"))
	assert.Equal(t, 42, r.Resolve(42))
	assert.Equal(t, true, r.Resolve(true))
	assert.Nil(t, r.Resolve(nil))
}

func TestResolveLocalRef(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    Pet:
      type: object
      properties:
        name: {type: string}
`)
	r := New(doc)

	resolved := r.Resolve(map[string]any{"$ref": "#/components/schemas/Pet"})
	m, ok := resolved.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", m["type"])
	assertNoRefs(t, resolved)
}

func TestResolveNestedRefs(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    Owner:
      type: object
      properties:
        pet: {$ref: '#/components/schemas/Pet'}
    Pet:
      type: object
      properties:
        name: {type: string}
`)
	r := New(doc)

	resolved := r.Resolve(doc.Raw()["components"])
	assertNoRefs(t, resolved)

	m := requireMapKey(t, resolved.(map[string]any), "schemas")
	owner := requireMapKey(t, m, "Owner")
	props := requireMapKey(t, owner, "properties")
	pet := requireMapKey(t, props, "pet")
	assert.Equal(t, "object", pet["type"], "nested $ref should be inlined")
}

func TestResolveCircularRef(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    A:
      type: object
      properties:
        b: {$ref: '#/components/schemas/B'}
    B:
      type: object
      properties:
        a: {$ref: '#/components/schemas/A'}
`)
	r := New(doc)

	resolved := r.Resolve(map[string]any{"$ref": "#/components/schemas/A"})
	require.NotNil(t, resolved, "cyclic resolution must terminate with a value")
	assertNoRefs(t, resolved)

	// Walk A -> b -> a: the inner reference back to A must be a sentinel.
	a := resolved.(map[string]any)
	b := requireMapKey(t, requireMapKey(t, a, "properties"), "b")
	inner := requireMapKey(t, requireMapKey(t, b, "properties"), "a")
	assert.Equal(t, true, inner[CircularKey], "cycle should produce a circular sentinel")
	assert.Equal(t, "#/components/schemas/A", inner["$ref"],
		"sentinel keeps the original $ref for diagnostics")
}

func TestResolveSelfReference(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    Node:
      type: object
      properties:
        value: {type: string}
        next: {$ref: '#/components/schemas/Node'}
`)
	r := New(doc)

	resolved := r.Resolve(map[string]any{"$ref": "#/components/schemas/Node"})
	require.NotNil(t, resolved)
	assertNoRefs(t, resolved)

	node := resolved.(map[string]any)
	next := requireMapKey(t, requireMapKey(t, node, "properties"), "next")
	assert.Equal(t, true, next[CircularKey])
}

func TestResolveIdempotent(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    Pet:
      type: object
      properties:
        tag: {$ref: '#/components/schemas/Tag'}
    Tag:
      type: string
`)
	r := New(doc)
	fragment := map[string]any{"$ref": "#/components/schemas/Pet"}

	first := r.Resolve(fragment)
	second := r.Resolve(fragment)
	assert.Equal(t, first, second, "repeated resolution must be value-equal")
}

func TestRefCacheReuse(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    Shared: {type: object}
`)
	r := New(doc)

	first := r.Resolve(map[string]any{"$ref": "#/components/schemas/Shared"})
	second := r.Resolve(map[string]any{"$ref": "#/components/schemas/Shared"})

	// Repeated references to the same pointer reuse the cached resolution.
	assert.Equal(t,
		reflect.ValueOf(first).Pointer(),
		reflect.ValueOf(second).Pointer(),
		"same ref string should hit the by-ref cache")
}

func TestFragmentMemoization(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    Diamond:
      type: object
      properties:
        left: {$ref: '#/components/schemas/Leaf'}
        right: {$ref: '#/components/schemas/Leaf'}
    Leaf:
      type: object
      properties:
        id: {type: integer}
`)
	r := New(doc)

	resolved := r.Resolve(doc.Raw()["components"]).(map[string]any)
	diamond := requireMapKey(t, requireMapKey(t, resolved, "schemas"), "Diamond")
	props := requireMapKey(t, diamond, "properties")
	left := requireMapKey(t, props, "left")
	right := requireMapKey(t, props, "right")

	assert.Equal(t,
		reflect.ValueOf(left).Pointer(),
		reflect.ValueOf(right).Pointer(),
		"diamond-shaped references should resolve the target once")
}

func TestUnresolvedRef(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    Pet:
      type: object
      properties:
        ghost: {$ref: '#/components/schemas/Missing'}
        name: {type: string}
`)
	r := New(doc)

	t.Run("missing pointer resolves to absent", func(t *testing.T) {
		assert.Nil(t, r.Resolve(map[string]any{"$ref": "#/components/schemas/Missing"}))
	})

	t.Run("external pointer resolves to absent", func(t *testing.T) {
		assert.Nil(t, r.Resolve(map[string]any{"$ref": "other.yaml#/components/schemas/Pet"}))
		assert.Nil(t, r.Resolve(map[string]any{"$ref": "https://example.com/api.yaml#/x"}))
	})

	t.Run("broken property is dropped, siblings survive", func(t *testing.T) {
		resolved := r.Resolve(map[string]any{"$ref": "#/components/schemas/Pet"})
		props := requireMapKey(t, resolved.(map[string]any), "properties")
		assert.NotContains(t, props, "ghost")
		assert.Contains(t, props, "name")
	})
}

func TestRefSiblingOverrides(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    Base:
      type: object
      description: base description
`)
	r := New(doc)

	resolved := r.Resolve(map[string]any{
		"$ref":        "#/components/schemas/Base",
		"description": "local override",
	})
	m := resolved.(map[string]any)
	assert.Equal(t, "local override", m["description"], "sibling keys win on conflict")
	assert.Equal(t, "object", m["type"], "target keys without conflict survive")
	assert.NotContains(t, m, "$ref")
}

func TestResolveAllOf(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  schemas:
    Identified:
      type: object
      required: [id]
      properties:
        id: {type: integer}
    Named:
      type: object
      required: [name]
      properties:
        name: {type: string}
`)
	r := New(doc)

	t.Run("branches fold left to right", func(t *testing.T) {
		resolved := r.Resolve(map[string]any{
			"allOf": []any{
				map[string]any{"$ref": "#/components/schemas/Identified"},
				map[string]any{"$ref": "#/components/schemas/Named"},
			},
		})
		m := resolved.(map[string]any)
		assertNoRefs(t, m)
		assert.NotContains(t, m, "allOf")

		props := requireMapKey(t, m, "properties")
		assert.Contains(t, props, "id")
		assert.Contains(t, props, "name")

		required, ok := m["required"].([]any)
		require.True(t, ok)
		assert.Equal(t, []any{"id", "name"}, required, "required lists union in branch order")
	})

	t.Run("local keys win over folded branches", func(t *testing.T) {
		resolved := r.Resolve(map[string]any{
			"allOf": []any{
				map[string]any{"$ref": "#/components/schemas/Identified"},
			},
			"description": "local",
			"type":        "object",
		})
		m := resolved.(map[string]any)
		assert.Equal(t, "local", m["description"])
	})

	t.Run("malformed allOf degrades to remaining keys", func(t *testing.T) {
		resolved := r.Resolve(map[string]any{
			"allOf": "not a sequence",
			"type":  "string",
		})
		m := resolved.(map[string]any)
		assert.Equal(t, "string", m["type"])
		assert.NotContains(t, m, "allOf")
	})
}

func TestPointerEscaping(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths:
  /pets/{id}:
    get:
      responses: {"200": {description: OK}}
components:
  schemas:
    "weird~name":
      type: string
`)
	r := New(doc)

	t.Run("tilde-1 escapes slash", func(t *testing.T) {
		target, found := r.lookup("#/paths/~1pets~1{id}")
		require.True(t, found)
		assert.Contains(t, target.(map[string]any), "get")
	})

	t.Run("tilde-0 escapes tilde", func(t *testing.T) {
		target, found := r.lookup("#/components/schemas/weird~0name")
		require.True(t, found)
		assert.Equal(t, "string", target.(map[string]any)["type"])
	})
}

func TestPointerArrayIndex(t *testing.T) {
	doc := parseDoc(t, `openapi: 3.0.0
paths: {}
components:
  parameters:
    shared:
      - name: limit
        in: query
      - name: offset
        in: query
`)
	r := New(doc)

	target, found := r.lookup("#/components/parameters/shared/1")
	require.True(t, found)
	assert.Equal(t, "offset", target.(map[string]any)["name"])

	_, found = r.lookup("#/components/parameters/shared/7")
	assert.False(t, found, "out-of-bounds index should not resolve")

	_, found = r.lookup("#/components/parameters/shared/x")
	assert.False(t, found, "non-numeric index should not resolve")
}

func TestLookupError(t *testing.T) {
	doc := parseDoc(t, "openapi: 3.0.0\npaths: {}\n")
	r := New(doc)

	_, err := r.Lookup("#/components/schemas/Missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerrors.ErrUnresolvedReference))

	var refErr *specerrors.ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "#/components/schemas/Missing", refErr.Ref)
}

func TestMerge(t *testing.T) {
	t.Run("null identity", func(t *testing.T) {
		a := map[string]any{"type": "object"}
		assert.Equal(t, a, Merge(a, nil))
		assert.Equal(t, a, Merge(nil, a))
		assert.Nil(t, Merge(nil, nil))
	})

	t.Run("sequence union preserves first-seen order", func(t *testing.T) {
		merged := Merge([]any{1, 2}, []any{2, 3})
		assert.Equal(t, []any{1, 2, 3}, merged)
	})

	t.Run("type mismatch means b wins", func(t *testing.T) {
		assert.Equal(t, "b", Merge(map[string]any{"a": 1}, "b"))
		assert.Equal(t, map[string]any{"a": 1}, Merge([]any{1}, map[string]any{"a": 1}))
		assert.Equal(t, 2, Merge(1, 2))
	})

	t.Run("mappings merge recursively", func(t *testing.T) {
		a := map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{"type": "integer"},
			},
		}
		b := map[string]any{
			"description": "merged",
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
			},
		}
		merged := Merge(a, b).(map[string]any)
		assert.Equal(t, "object", merged["type"])
		assert.Equal(t, "merged", merged["description"])
		props := merged["properties"].(map[string]any)
		assert.Contains(t, props, "id")
		assert.Contains(t, props, "name")
	})

	t.Run("b's allOf key is skipped", func(t *testing.T) {
		merged := Merge(
			map[string]any{"type": "object"},
			map[string]any{"allOf": []any{1}, "description": "kept"},
		).(map[string]any)
		assert.NotContains(t, merged, "allOf")
		assert.Equal(t, "kept", merged["description"])
	})

	t.Run("operands are not mutated", func(t *testing.T) {
		a := map[string]any{"x": 1}
		b := map[string]any{"y": 2}
		_ = Merge(a, b)
		assert.Equal(t, map[string]any{"x": 1}, a)
		assert.Equal(t, map[string]any{"y": 2}, b)
	})
}
