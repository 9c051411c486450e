package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDataDir   = "kingsraid-data/table-data/heroes"
	testAssetsDir = "kingsraid-data/assets/heroes"
	testRelease   = "kingsraid-data/release-order.json"
)

var testOptions = Options{
	HeroDataDir:      testDataDir,
	HeroAssetsDir:    testAssetsDir,
	ReleaseOrderFile: testRelease,
	AggregateFile:    "heroes.json",
}

func file(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func icon() *fstest.MapFile {
	return &fstest.MapFile{Data: []byte{0x89, 'P', 'N', 'G'}}
}

func names(heroes []Hero) []string {
	out := make([]string, len(heroes))
	for i, h := range heroes {
		out[i] = h.Name
	}
	return out
}

func definitionsFS() fstest.MapFS {
	return fstest.MapFS{
		testDataDir + "/Kasel.json":  file(`{"infos":{"name":"Kasel","class":"Warrior"}}`),
		testDataDir + "/Frey.json":   file(`{"infos":{"name":"Frey"},"role":"Priest"}`),
		testDataDir + "/Aisha.json":  file(`{"infos":{"name":"Aisha"}}`),
		testDataDir + "/Custom.json": file(`{"infos":{}}`),
		testDataDir + "/broken.json": file(`{"infos":`),
		testDataDir + "/heroes.json": file(`{"infos":{"name":"Aggregate"}}`),
		testDataDir + "/notes.txt":   file(`not a hero`),

		testAssetsDir + "/Kasel/ico.png": icon(),
		testAssetsDir + "/Frey/ico.png":  icon(),
		testAssetsDir + "/Aisha/ico.png": icon(),
	}
}

func TestList_FromDefinitions(t *testing.T) {
	c := New(definitionsFS(), testOptions, nil, nil)

	listing := c.List(SortByName)

	assert.Equal(t, SortByName, listing.CurrentSort)
	assert.Equal(t, 4, listing.Total)
	assert.Equal(t, 3, listing.Loaded)
	assert.Equal(t, 1, listing.MissingCount)
	assert.Equal(t, []string{"Custom"}, listing.MissingHeroes)

	if diff := cmp.Diff([]string{"Aisha", "Frey", "Kasel"}, names(listing.Heroes)); diff != "" {
		t.Fatalf("hero order mismatch (-want +got):\n%s", diff)
	}

	kasel := listing.Heroes[2]
	assert.Equal(t, Hero{
		ID:           "Kasel",
		Name:         "Kasel",
		Role:         "Warrior",
		Rarity:       DefaultRarity,
		Image:        "/kingsraid-data/assets/heroes/Kasel/ico.png",
		ReleaseOrder: -1,
	}, kasel)
}

func TestList_RoleResolution(t *testing.T) {
	c := New(definitionsFS(), testOptions, nil, nil)

	roles := map[string]string{}
	for _, h := range c.List(SortByName).Heroes {
		roles[h.Name] = h.Role
	}

	assert.Equal(t, "Warrior", roles["Kasel"], "class field wins")
	assert.Equal(t, "Priest", roles["Frey"], "role field is second")
	assert.Equal(t, "Wizard", roles["Aisha"], "static roster is third")
}

func TestList_UnknownRoleAndFilenameFallback(t *testing.T) {
	fsys := fstest.MapFS{
		testDataDir + "/Nobody.json":      file(`{"infos":{}}`),
		testAssetsDir + "/Nobody/ico.png": icon(),
	}
	c := New(fsys, testOptions, nil, nil)

	listing := c.List(SortByName)

	require.Len(t, listing.Heroes, 1)
	assert.Equal(t, "Nobody", listing.Heroes[0].Name)
	assert.Equal(t, "Nobody", listing.Heroes[0].ID)
	assert.Equal(t, UnknownRole, listing.Heroes[0].Role)
}

func TestList_ReleaseSort(t *testing.T) {
	fsys := definitionsFS()
	fsys[testRelease] = file(`{"Frey": 2, "Kasel": 1, "Ghost": 3, "Bogus": "soon"}`)
	c := New(fsys, testOptions, nil, nil)

	listing := c.List(SortByRelease)

	assert.Equal(t, SortByRelease, listing.CurrentSort)
	if diff := cmp.Diff([]string{"Kasel", "Frey", "Aisha"}, names(listing.Heroes)); diff != "" {
		t.Fatalf("release order mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, listing.Heroes[0].HasReleaseOrder)
	assert.Equal(t, 0, listing.Heroes[0].ReleaseOrder)
	assert.Equal(t, 1, listing.Heroes[1].ReleaseOrder)
	assert.False(t, listing.Heroes[2].HasReleaseOrder)
	assert.Equal(t, -1, listing.Heroes[2].ReleaseOrder)
}

func TestList_ReleaseSortWithoutReleaseFile(t *testing.T) {
	c := New(definitionsFS(), testOptions, nil, nil)

	listing := c.List(SortByRelease)

	assert.Equal(t, SortByRelease, listing.CurrentSort)
	assert.Equal(t, []string{"Aisha", "Frey", "Kasel"}, names(listing.Heroes))
}

func TestList_FallsBackToAssetFolders(t *testing.T) {
	fsys := fstest.MapFS{
		testAssetsDir + "/Roi/ico.png":     icon(),
		testAssetsDir + "/Cleo/ico.png":    icon(),
		testAssetsDir + "/Empty/notes.txt": file("no icon yet"),
		testAssetsDir + "/stray.png":       icon(),
	}
	c := New(fsys, testOptions, nil, nil)

	listing := c.List(SortByName)

	require.Len(t, listing.Heroes, 2)
	assert.Equal(t, 2, listing.Total)
	assert.Empty(t, listing.MissingHeroes)

	assert.Equal(t, Hero{
		ID: "1", Name: "Cleo", Role: "Wizard", Rarity: DefaultRarity,
		Image: "/kingsraid-data/assets/heroes/Cleo/ico.png", ReleaseOrder: -1,
	}, listing.Heroes[0])
	assert.Equal(t, "2", listing.Heroes[1].ID)
	assert.Equal(t, "Assassin", listing.Heroes[1].Role)
}

func TestList_FallsBackWhenNoDefinitionParses(t *testing.T) {
	fsys := fstest.MapFS{
		testDataDir + "/broken.json":      file(`nope`),
		testAssetsDir + "/Kasel/ico.png": icon(),
	}
	c := New(fsys, testOptions, nil, nil)

	listing := c.List(SortByName)

	require.Len(t, listing.Heroes, 1)
	assert.Equal(t, "1", listing.Heroes[0].ID)
	assert.Equal(t, "Warrior", listing.Heroes[0].Role)
}

func TestList_BuiltinRosterWhenNothingOnDisk(t *testing.T) {
	c := New(fstest.MapFS{}, testOptions, nil, nil)

	listing := c.List(SortByName)

	assert.NotNil(t, listing.Heroes)
	assert.Empty(t, listing.Heroes)
	assert.Equal(t, len(builtinRoster), listing.Total)
	assert.Equal(t, len(builtinRoster), listing.MissingCount)
	assert.Equal(t, []string{"Aisha", "Annette", "Arch", "Clause", "Cleo", "Frey", "Kasel", "Roi"}, listing.MissingHeroes)
}

func TestList_RereadsFilesystem(t *testing.T) {
	fsys := definitionsFS()
	c := New(fsys, testOptions, nil, nil)

	require.Equal(t, 3, c.List(SortByName).Loaded)

	fsys[testAssetsDir+"/Custom/ico.png"] = icon()
	assert.Equal(t, 4, c.List(SortByName).Loaded)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortByRelease, ParseSortMode("release"))
	assert.Equal(t, SortByRelease, ParseSortMode(" Release "))
	assert.Equal(t, SortByName, ParseSortMode("name"))
	assert.Equal(t, SortByName, ParseSortMode(""))
	assert.Equal(t, SortByName, ParseSortMode("power"))
}

func TestRoleFor(t *testing.T) {
	assert.Equal(t, "Mechanic", RoleFor("Miruru"))
	assert.Equal(t, UnknownRole, RoleFor("Someone"))
}
