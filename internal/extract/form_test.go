package extract

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormDocumentNesting(t *testing.T) {
	values, err := url.ParseQuery("event=payment_approved&data[customer_email]=a%40x.com&data[plan_id]=mamae10-anual")
	assert.NoError(t, err)

	doc := FormDocument(values)

	assert.Equal(t, "payment_approved", doc["event"])
	assert.Equal(t, "a@x.com", FirstString(doc, "/data/customer_email"))
	assert.Equal(t, "mamae10-anual", FirstString(doc, "/data/plan_id"))
}

func TestFormDocumentFlatAndRepeated(t *testing.T) {
	values := url.Values{
		"email":  {"first@x.com", "second@x.com"},
		"empty":  {},
		"odd[":   {"y"},
	}

	doc := FormDocument(values)

	assert.Equal(t, "first@x.com", doc["email"])
	assert.Equal(t, "y", doc["odd["])
	assert.NotContains(t, doc, "empty")
}
