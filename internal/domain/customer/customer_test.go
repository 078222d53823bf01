package customer_test

import (
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/pkg/apperrors"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_Normalize(t *testing.T) {
	f := customer.Fields{
		Name:         "  Maria Silva ",
		Document:     " 123.456.789-00 ",
		Phone:        " (11) 98888-7777",
		WhatsApp:     "11988887777  ",
		Address:      "   ",
		Observations: "\tcliente antiga\n",
	}.Normalize()

	assert.Equal(t, "Maria Silva", f.Name)
	assert.Equal(t, "123.456.789-00", f.Document)
	assert.Equal(t, "(11) 98888-7777", f.Phone)
	assert.Equal(t, "11988887777", f.WhatsApp)
	assert.Equal(t, "", f.Address)
	assert.Equal(t, "cliente antiga", f.Observations)
}

func TestFields_Validate(t *testing.T) {
	valid := customer.Fields{Name: "Maria", Phone: "11 3333-4444", WhatsApp: "11999998888"}

	tests := []struct {
		name      string
		mutate    func(f *customer.Fields)
		wantField string
	}{
		{name: "Valid", mutate: func(f *customer.Fields) {}},
		{name: "Missing name", mutate: func(f *customer.Fields) { f.Name = "" }, wantField: "name"},
		{name: "Missing phone", mutate: func(f *customer.Fields) { f.Phone = "" }, wantField: "phone"},
		{name: "Missing whatsapp", mutate: func(f *customer.Fields) { f.WhatsApp = "" }, wantField: "whatsapp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			var ve *apperrors.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestCustomer_Matches(t *testing.T) {
	c := customer.NewCustomer(customer.Fields{Name: "João Pereira", Phone: "(21) 3232-1010", WhatsApp: "21987654321"})

	assert.True(t, c.Matches(""))
	assert.True(t, c.Matches("joão"))
	assert.True(t, c.Matches("PEREIRA"))
	assert.True(t, c.Matches("3232"))
	assert.True(t, c.Matches("98765"))
	assert.False(t, c.Matches("maria"))
	assert.True(t, c.Matches("joão p"))
	assert.False(t, c.Matches(" joão"))
}

func TestSearch_WhitespaceTermIsLiteral(t *testing.T) {
	list := []*customer.Customer{
		{ID: "1", Name: "Ana", Phone: "1111", WhatsApp: "9111"},
		{ID: "2", Name: "Maria  Clara", Phone: "2222", WhatsApp: "9222"},
		{ID: "3", Name: "Carla Ana", Phone: "3333", WhatsApp: "9333"},
	}

	got := customer.Search(list, "  ")

	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
	assert.Len(t, customer.Search(list, " "), 2)
}

func TestSearch_PreservesOrder(t *testing.T) {
	list := []*customer.Customer{
		{ID: "1", Name: "Ana", Phone: "1111", WhatsApp: "9111"},
		{ID: "2", Name: "Bruno", Phone: "2222", WhatsApp: "9222"},
		{ID: "3", Name: "Carla Ana", Phone: "3333", WhatsApp: "9333"},
	}

	got := customer.Search(list, "ana")

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Len(t, customer.Search(list, ""), 3)
	assert.Empty(t, customer.Search(list, "zzz"))
}

func TestCustomer_CloneIsIndependent(t *testing.T) {
	c := &customer.Customer{ID: "1", Name: "Ana"}
	cp := c.Clone()
	cp.Name = "Outra"

	assert.Equal(t, "Ana", c.Name)
	assert.Nil(t, (*customer.Customer)(nil).Clone())
}
