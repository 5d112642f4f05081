package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mediapull/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockDocClient implements driven.DocClient.
type mockDocClient struct {
	docs      map[string]*domain.Document // by GUID
	fetchErr  error
	manyDocs  []domain.Document
	manyErr   error
	fetchLog  []string
	manyCalls int
}

func newMockDocClient() *mockDocClient {
	return &mockDocClient{docs: make(map[string]*domain.Document)}
}

func (m *mockDocClient) FetchOne(_ context.Context, guid string) (*domain.Document, error) {
	m.fetchLog = append(m.fetchLog, guid)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	doc, ok := m.docs[guid]
	if !ok {
		return nil, domain.ErrFetchFailed
	}
	// Copy so each fetch behaves like a fresh remote response.
	c := *doc
	return &c, nil
}

func (m *mockDocClient) FetchMany(_ context.Context, _ domain.Query) ([]domain.Document, error) {
	m.manyCalls++
	if m.manyErr != nil {
		return nil, m.manyErr
	}
	return m.manyDocs, nil
}

// mockResolver implements driven.MappingResolver with static tables.
type mockResolver struct {
	targets  map[string]domain.Target
	mappings map[string]domain.MappingConfig // by profile
	kinds    map[string]domain.AttrKind      // by profile + "/" + attr
	fields   map[string]domain.FieldDefinition
}

func (m *mockResolver) Resolve(profile string) (domain.Target, bool) {
	t, ok := m.targets[profile]
	return t, ok
}

func (m *mockResolver) FieldMapping(_ domain.Category, _, profile string) domain.MappingConfig {
	cfg, ok := m.mappings[profile]
	if !ok {
		return domain.MappingConfig{Fields: map[string]string{}}
	}
	return cfg
}

func (m *mockResolver) AttributeKind(profile, attr string) domain.AttrKind {
	if k, ok := m.kinds[profile+"/"+attr]; ok {
		return k
	}
	return domain.KindScalar
}

func (m *mockResolver) BundleFields(_ domain.Category, _ string) map[string]domain.FieldDefinition {
	return m.fields
}

// storyResolver builds the mapping setup used by most tests: a "story"
// profile mapped onto content/article with title as label, plus image
// items into a file-reference field.
func storyResolver() *mockResolver {
	return &mockResolver{
		targets: map[string]domain.Target{
			"story": {Category: domain.CategoryContent, Bundle: "article", Label: "title"},
			"image": {Category: domain.CategoryFile, Bundle: "image", Label: ""},
		},
		mappings: map[string]domain.MappingConfig{
			"story": {Fields: map[string]string{
				"title":      "title",
				"teaser":     "field_teaser",
				"tags":       "field_tags",
				"byline":     "-",
				"item-image": "field_images",
			}},
			"image": {Fields: map[string]string{}},
		},
		kinds: map[string]domain.AttrKind{
			"story/tags":  domain.KindList,
			"story/valid": domain.KindWindow,
		},
		fields: map[string]domain.FieldDefinition{
			"field_teaser": {Name: "field_teaser", Kind: domain.FieldText},
			"field_tags":   {Name: "field_tags", Kind: domain.FieldTermReference, Vocabulary: "topics"},
			"field_images": {Name: "field_images", Kind: domain.FieldFileRef},
		},
	}
}

type syncFixture struct {
	sync     *Synchronizer
	client   *mockDocClient
	entities *memory.EntityStore
	taxonomy *memory.TaxonomyStore
	files    *memory.FileStore
}

func newSyncFixture(t *testing.T, resolver driven.MappingResolver, hooks ...driven.DefaultValueHook) *syncFixture {
	t.Helper()

	f := &syncFixture{
		client:   newMockDocClient(),
		entities: memory.NewEntityStore(),
		taxonomy: memory.NewTaxonomyStore(),
		files:    memory.NewFileStore(),
	}
	f.sync = NewSynchronizer(
		f.client,
		resolver,
		f.entities,
		f.taxonomy,
		f.files,
		driven.FormatFunc(func(string) string { return "plain_text" }),
		Config{
			PullActor:     "pull-actor",
			DefaultScheme: "public",
			StorageSchemes: map[string]string{
				"image": "images",
			},
			LocalProfiles: map[string]bool{"image": true},
		},
		hooks...,
	)
	return f
}

func storyDoc(guid string) *domain.Document {
	return &domain.Document{
		GUID:        guid,
		ProfileHref: "https://api.example.org/profiles/story",
		Published:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Attributes: map[string]domain.AttrValue{
			"title":  domain.ScalarValue("A headline"),
			"teaser": domain.ScalarValue("Short teaser text"),
		},
	}
}

func TestSynchronize_UnmappedProfile(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	doc := storyDoc("g1")
	doc.ProfileHref = "https://api.example.org/profiles/episode"

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnmappedProfile)
	assert.Nil(t, rec)
	assert.Equal(t, 0, f.entities.Len())
}

func TestSynchronize_CreatesContentRecord(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	rec, err := f.sync.Synchronize(context.Background(), storyDoc("g1"))

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, domain.CategoryContent, rec.Category)
	assert.Equal(t, "article", rec.Bundle)
	assert.Equal(t, "g1", rec.GUID)
	assert.Equal(t, "pull-actor", rec.Owner)
	assert.True(t, rec.Pulled)
	assert.Equal(t, domain.StatusPublished, rec.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), rec.CreatedAt)
}

func TestSynchronize_Idempotent(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	first, err := f.sync.Synchronize(context.Background(), storyDoc("g1"))
	require.NoError(t, err)

	doc := storyDoc("g1")
	doc.Attributes["title"] = domain.ScalarValue("An updated headline")
	second, err := f.sync.Synchronize(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.entities.Len())
	require.Len(t, second.Field("title"), 1)
	assert.Equal(t, domain.StringValue("An updated headline"), second.Field("title")[0])
}

func TestSynchronize_LabelTruncated(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	doc := storyDoc("g1")
	doc.Attributes["title"] = domain.ScalarValue(strings.Repeat("x", 300))

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	require.Len(t, rec.Field("title"), 1)
	title, ok := rec.Field("title")[0].(domain.StringValue)
	require.True(t, ok)
	assert.Len(t, string(title), 255)
}

func TestSynchronize_ScalarMapsToFormattedText(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	rec, err := f.sync.Synchronize(context.Background(), storyDoc("g1"))

	require.NoError(t, err)
	require.Len(t, rec.Field("field_teaser"), 1)
	assert.Equal(t, domain.TextValue{Value: "Short teaser text", Format: "plain_text"}, rec.Field("field_teaser")[0])
}

func TestSynchronize_DisabledFieldSkipped(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	doc := storyDoc("g1")
	doc.Attributes["byline"] = domain.ScalarValue("A. Writer")

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	assert.Empty(t, rec.Field("byline"))
	assert.Empty(t, rec.Field("-"))
}

func TestSynchronize_TermsDeduplicated(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	doc := storyDoc("g1")
	doc.Attributes["tags"] = domain.ListValue{"science", "health"}
	_, err := f.sync.Synchronize(context.Background(), doc)
	require.NoError(t, err)

	doc2 := storyDoc("g2")
	doc2.Attributes["tags"] = domain.ListValue{"science", "politics"}
	rec, err := f.sync.Synchronize(context.Background(), doc2)
	require.NoError(t, err)

	// Three distinct names total, "science" reused.
	assert.Equal(t, 3, f.taxonomy.Len())
	require.Len(t, rec.Field("field_tags"), 2)

	existing, err := f.taxonomy.FindTerm(context.Background(), "science", "topics")
	require.NoError(t, err)
	assert.Equal(t, domain.TermRef{TermID: existing.ID}, rec.Field("field_tags")[0])
}

func TestSynchronize_ListWithoutVocabularyJoins(t *testing.T) {
	resolver := storyResolver()
	resolver.fields["field_tags"] = domain.FieldDefinition{Name: "field_tags", Kind: domain.FieldText}
	f := newSyncFixture(t, resolver)

	doc := storyDoc("g1")
	doc.Attributes["tags"] = domain.ListValue{"one", "two"}

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	require.Len(t, rec.Field("field_tags"), 1)
	assert.Equal(t, domain.StringValue("one, two"), rec.Field("field_tags")[0])
	assert.Equal(t, 0, f.taxonomy.Len())
}

func TestSynchronize_ExpiredWindowUnpublishes(t *testing.T) {
	f := newSyncFixture(t, storyResolver())
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f.sync.now = func() time.Time { return now }

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	doc := storyDoc("g1")
	doc.Attributes[domain.AttrValid] = domain.WindowValue{From: &from, To: &to}

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnpublished, rec.Status)
	require.NotNil(t, rec.ValidFrom)
	require.NotNil(t, rec.ValidTo)
	assert.Equal(t, from, *rec.ValidFrom)
	assert.Equal(t, to, *rec.ValidTo)
}

func TestSynchronize_OpenWindowPublishes(t *testing.T) {
	f := newSyncFixture(t, storyResolver())
	f.sync.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := storyDoc("g1")
	doc.Attributes[domain.AttrValid] = domain.WindowValue{From: &from}

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, rec.Status)
	assert.Nil(t, rec.ValidTo)
}

func TestSynchronize_LocalEnclosureDownloaded(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	doc := &domain.Document{
		GUID:        "img1",
		ProfileHref: "https://api.example.org/profiles/image",
		Published:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Enclosures: []domain.Enclosure{
			{Href: "https://cdn.example.org/a.jpg", MIMEType: "image/jpeg"},
		},
	}

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFile, rec.Category)
	assert.Equal(t, "images://img1.jpg", rec.File.URI)
	assert.Equal(t, "img1.jpg", rec.File.Filename)
	assert.Equal(t, "image/jpeg", rec.File.MIMEType)
	assert.Equal(t, int64(1024), rec.File.Size)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), rec.Timestamp)

	require.Len(t, f.files.Downloads, 1)
	assert.Equal(t, "https://cdn.example.org/a.jpg", f.files.Downloads[0][0])
	assert.Equal(t, "images://img1.jpg", f.files.Downloads[0][1])
}

func TestSynchronize_RemoteEnclosureKeepsURL(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	doc := storyDoc("g1")
	doc.Enclosures = []domain.Enclosure{
		{Href: "https://cdn.example.org/teaser.jpg", MIMEType: "image/jpeg"},
	}

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/teaser.jpg", rec.File.URI)
	assert.Empty(t, rec.File.Filename)
	assert.Empty(t, f.files.Downloads)
}

func TestSynchronize_EnclosureDeduplicatedByURI(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	doc := storyDoc("g1")
	doc.Enclosures = []domain.Enclosure{
		{Href: "https://cdn.example.org/shared.jpg", MIMEType: "image/jpeg"},
	}
	_, err := f.sync.Synchronize(context.Background(), doc)
	require.NoError(t, err)

	first, err := f.files.FindByURI(context.Background(), "https://cdn.example.org/shared.jpg")
	require.NoError(t, err)

	doc2 := storyDoc("g2")
	doc2.Enclosures = doc.Enclosures
	_, err = f.sync.Synchronize(context.Background(), doc2)
	require.NoError(t, err)

	second, err := f.files.FindByURI(context.Background(), "https://cdn.example.org/shared.jpg")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.files.Len())
}

func TestSynchronize_ItemsResolvedToReferences(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	f.client.docs["img1"] = &domain.Document{
		GUID:        "img1",
		ProfileHref: "https://api.example.org/profiles/image",
		Enclosures: []domain.Enclosure{
			{Href: "https://cdn.example.org/a.jpg", MIMEType: "image/jpeg"},
		},
	}

	doc := storyDoc("g1")
	doc.Items = []domain.Document{
		{GUID: "img1", ProfileHref: "https://api.example.org/profiles/image"},
	}

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	require.Len(t, rec.Field("field_images"), 1)
	ref, ok := rec.Field("field_images")[0].(domain.FileReference)
	require.True(t, ok)
	assert.True(t, ref.Display)
	assert.NotEmpty(t, ref.TargetID)

	// The item itself became a file record.
	assert.Equal(t, 2, f.entities.Len())
}

func TestSynchronize_ItemRecursionBounded(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	// The embedded image itself embeds another item; the nested item
	// must never be fetched.
	f.client.docs["img1"] = &domain.Document{
		GUID:        "img1",
		ProfileHref: "https://api.example.org/profiles/image",
		Items: []domain.Document{
			{GUID: "img2", ProfileHref: "https://api.example.org/profiles/image"},
		},
	}

	doc := storyDoc("g1")
	doc.Items = []domain.Document{
		{GUID: "img1", ProfileHref: "https://api.example.org/profiles/image"},
	}

	_, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, []string{"img1"}, f.client.fetchLog)
}

func TestSynchronize_ItemReferencesDeduplicated(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	f.client.docs["img1"] = &domain.Document{
		GUID:        "img1",
		ProfileHref: "https://api.example.org/profiles/image",
	}

	doc := storyDoc("g1")
	doc.Items = []domain.Document{
		{GUID: "img1", ProfileHref: "https://api.example.org/profiles/image"},
		{GUID: "img1", ProfileHref: "https://api.example.org/profiles/image"},
	}

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	assert.Len(t, rec.Field("field_images"), 1)
}

func TestSynchronize_FailedItemSkipped(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	// "gone" is not registered with the client, so its fetch fails.
	doc := storyDoc("g1")
	doc.Items = []domain.Document{
		{GUID: "gone", ProfileHref: "https://api.example.org/profiles/image"},
	}

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Empty(t, rec.Field("field_images"))
}

func TestSynchronize_UnknownItemProfileIgnored(t *testing.T) {
	resolver := storyResolver()
	resolver.mappings["story"].Fields["item-story"] = "field_related"
	f := newSyncFixture(t, resolver)

	f.client.docs["s2"] = storyDoc("s2")

	doc := storyDoc("g1")
	doc.Items = []domain.Document{
		{GUID: "s2", ProfileHref: "https://api.example.org/profiles/story"},
	}

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	assert.Empty(t, rec.Field("field_related"))
	assert.Empty(t, f.client.fetchLog)
}

func TestSynchronize_DefaultsBackfilled(t *testing.T) {
	resolver := storyResolver()
	resolver.fields["field_source"] = domain.FieldDefinition{
		Name:    "field_source",
		Kind:    domain.FieldText,
		Default: []domain.FieldValue{domain.StringValue("wire")},
	}
	f := newSyncFixture(t, resolver)

	rec, err := f.sync.Synchronize(context.Background(), storyDoc("g1"))

	require.NoError(t, err)
	require.Len(t, rec.Field("field_source"), 1)
	assert.Equal(t, domain.StringValue("wire"), rec.Field("field_source")[0])
}

func TestSynchronize_DefaultNeverOverwritesMappedValue(t *testing.T) {
	resolver := storyResolver()
	resolver.fields["field_teaser"] = domain.FieldDefinition{
		Name:    "field_teaser",
		Kind:    domain.FieldText,
		Default: []domain.FieldValue{domain.StringValue("default teaser")},
	}
	f := newSyncFixture(t, resolver)

	rec, err := f.sync.Synchronize(context.Background(), storyDoc("g1"))

	require.NoError(t, err)
	require.Len(t, rec.Field("field_teaser"), 1)
	assert.Equal(t, domain.TextValue{Value: "Short teaser text", Format: "plain_text"}, rec.Field("field_teaser")[0])
}

func TestSynchronize_DefaultValueHooksRunInOrder(t *testing.T) {
	resolver := storyResolver()
	resolver.fields["field_source"] = domain.FieldDefinition{
		Name:    "field_source",
		Kind:    domain.FieldText,
		Default: []domain.FieldValue{domain.StringValue("wire")},
	}

	var order []string
	first := func(field string, values []domain.FieldValue) []domain.FieldValue {
		if field == "field_source" {
			order = append(order, "first")
			return []domain.FieldValue{domain.StringValue("syndicated")}
		}
		return values
	}
	second := func(field string, values []domain.FieldValue) []domain.FieldValue {
		if field == "field_source" {
			order = append(order, "second")
		}
		return values
	}

	f := newSyncFixture(t, resolver, first, second)

	rec, err := f.sync.Synchronize(context.Background(), storyDoc("g1"))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
	require.Len(t, rec.Field("field_source"), 1)
	assert.Equal(t, domain.StringValue("syndicated"), rec.Field("field_source")[0])
}

func TestSynchronize_ContextCarriedToRecord(t *testing.T) {
	f := newSyncFixture(t, storyResolver())

	doc := storyDoc("g1")
	doc.Context = "nightly-pull"

	rec, err := f.sync.Synchronize(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, "nightly-pull", rec.Context)
}

func TestSynchronize_SaveErrorPropagates(t *testing.T) {
	f := newSyncFixture(t, storyResolver())
	boom := errors.New("disk full")
	f.sync.entities = &failingEntityStore{err: boom}

	rec, err := f.sync.Synchronize(context.Background(), storyDoc("g1"))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, rec)
}

// failingEntityStore fails every save.
type failingEntityStore struct {
	err error
}

func (s *failingEntityStore) LookupIDByGUID(_ context.Context, _ string) (string, bool, error) {
	return "", false, nil
}

func (s *failingEntityStore) Load(_ context.Context, _ domain.Category, _ string) (*domain.Record, error) {
	return nil, domain.ErrNotFound
}

func (s *failingEntityStore) Save(_ context.Context, _ *domain.Record) (*domain.Record, error) {
	return nil, s.err
}
