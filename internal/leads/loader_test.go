package leads

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLeadsFile(t *testing.T, content string) *Loader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewLoader(path)
}

const sampleCSV = "prospect_name,company_name,job_title,phone,email,timezone\n" +
	"John Smith,ABC Corporation,IT Director,+1 555 0100,john.smith@abc.com,America/New_York\n" +
	"Jane Doe,Widgets Inc, VP Finance ,,jane@widgets.example,\n"

func TestLoadParsesRows(t *testing.T) {
	loader := writeLeadsFile(t, sampleCSV)

	all, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "John Smith", all[0].Name)
	assert.Equal(t, "ABC Corporation", all[0].Company)
	assert.Equal(t, "john.smith@abc.com", all[0].Email)
	assert.Equal(t, "VP Finance", all[1].JobTitle, "fields are trimmed")
	assert.Equal(t, "", all[1].Phone)
}

func TestLoadToleratesBOM(t *testing.T) {
	loader := writeLeadsFile(t, "\uFEFFprospect_name,email\nJohn Smith,j@abc.com\n")

	all, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "John Smith", all[0].Name)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.csv"))

	all, err := loader.Load()
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 0, loader.Count())
}

func TestByIndexIsOneBased(t *testing.T) {
	loader := writeLeadsFile(t, sampleCSV)

	first, ok := loader.ByIndex(1)
	require.True(t, ok)
	assert.Equal(t, "John Smith", first.Name)

	second, ok := loader.ByIndex(2)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", second.Name)

	_, ok = loader.ByIndex(0)
	assert.False(t, ok)
	_, ok = loader.ByIndex(3)
	assert.False(t, ok)
}

func TestLoadPageClampsAndPaginates(t *testing.T) {
	content := "prospect_name,email\n"
	for i := 0; i < 10; i++ {
		content += "Lead,lead@example.com\n"
	}
	loader := writeLeadsFile(t, content)

	page, err := loader.LoadPage(1)
	require.NoError(t, err)
	assert.Len(t, page.Leads, PageSize)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 10, page.Total)
	assert.Equal(t, 1, page.StartIndex)

	page, err = loader.LoadPage(99)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Leads, 2)
	assert.Equal(t, 9, page.StartIndex)

	page, err = loader.LoadPage(-3)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
}

func TestLoadPageEmptyFile(t *testing.T) {
	loader := writeLeadsFile(t, "")

	page, err := loader.LoadPage(1)
	require.NoError(t, err)
	assert.Empty(t, page.Leads)
	assert.Equal(t, 1, page.TotalPages)
}
