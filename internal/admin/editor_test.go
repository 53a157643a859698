package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

type fakeEditClient struct {
	updateCalls int
	priceCalls  int
	lastOption  int64
	lastPrice   int64
	err         error
}

func (f *fakeEditClient) UpdateProduct(_ context.Context, id int64, product models.Product) (*models.Product, error) {
	f.updateCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &product, nil
}

func (f *fakeEditClient) QuickUpdatePrice(_ context.Context, optionID, newPrice int64) error {
	f.priceCalls++
	f.lastOption = optionID
	f.lastPrice = newPrice
	return f.err
}

func editableList() *ProductList {
	list := NewProductList()
	list.Replace([]models.Product{
		{ID: 1, NameEs: "Paila Marina", Available: true, Options: []models.ProductOption{
			{ID: 10, NameEs: "Individual", Price: 8000},
			{ID: 11, NameEs: "Para Compartir", Price: 14000},
		}},
		{ID: 2, NameEs: "Reineta Frita", Available: true},
	})
	return list
}

func TestBeginEditReplacesPrior(t *testing.T) {
	editor := NewEditor(&fakeEditClient{}, editableList())

	if err := editor.BeginEdit(EditTarget{ProductID: 1, Field: FieldPrice, OptionID: 10}); err != nil {
		t.Fatalf("first BeginEdit: %v", err)
	}
	if err := editor.BeginEdit(EditTarget{ProductID: 2, Field: FieldName}); err != nil {
		t.Fatalf("second BeginEdit: %v", err)
	}

	target, ok := editor.Editing()
	if !ok {
		t.Fatal("expected an active edit")
	}
	if target.ProductID != 2 || target.Field != FieldName {
		t.Errorf("active edit = %+v, want product 2 name", target)
	}
}

func TestBeginEditValidation(t *testing.T) {
	editor := NewEditor(&fakeEditClient{}, editableList())

	if err := editor.BeginEdit(EditTarget{ProductID: 99, Field: FieldName}); err == nil {
		t.Error("expected error for unknown product")
	}
	if err := editor.BeginEdit(EditTarget{ProductID: 1, Field: FieldPrice}); err == nil {
		t.Error("expected error for price edit without option id")
	}
}

func TestCommitEditNoActive(t *testing.T) {
	editor := NewEditor(&fakeEditClient{}, editableList())
	if err := editor.CommitEdit(context.Background(), "9000"); !errors.Is(err, models.ErrNoActiveEdit) {
		t.Fatalf("CommitEdit = %v, want ErrNoActiveEdit", err)
	}
}

func TestCommitEditUnchangedValueSkipsNetwork(t *testing.T) {
	client := &fakeEditClient{}
	editor := NewEditor(client, editableList())

	if err := editor.BeginEdit(EditTarget{ProductID: 1, Field: FieldPrice, OptionID: 10}); err != nil {
		t.Fatal(err)
	}
	if err := editor.CommitEdit(context.Background(), "8000"); err != nil {
		t.Fatalf("CommitEdit: %v", err)
	}
	if client.priceCalls != 0 {
		t.Errorf("priceCalls = %d, want 0 for unchanged value", client.priceCalls)
	}
	if _, ok := editor.Editing(); ok {
		t.Error("edit should be cleared after a no-op commit")
	}

	if err := editor.BeginEdit(EditTarget{ProductID: 2, Field: FieldName}); err != nil {
		t.Fatal(err)
	}
	if err := editor.CommitEdit(context.Background(), "  Reineta Frita  "); err != nil {
		t.Fatalf("CommitEdit: %v", err)
	}
	if client.updateCalls != 0 {
		t.Errorf("updateCalls = %d, want 0 for unchanged name", client.updateCalls)
	}
}

func TestCommitEditPrice(t *testing.T) {
	client := &fakeEditClient{}
	list := editableList()
	editor := NewEditor(client, list)

	if err := editor.BeginEdit(EditTarget{ProductID: 1, Field: FieldPrice, OptionID: 10}); err != nil {
		t.Fatal(err)
	}
	if err := editor.CommitEdit(context.Background(), "9500"); err != nil {
		t.Fatalf("CommitEdit: %v", err)
	}
	if client.priceCalls != 1 || client.lastOption != 10 || client.lastPrice != 9500 {
		t.Errorf("call = (%d, option %d, price %d), want (1, 10, 9500)", client.priceCalls, client.lastOption, client.lastPrice)
	}

	p, _ := list.Get(1)
	if p.Options[0].Price != 9500 {
		t.Errorf("local price = %d, want 9500", p.Options[0].Price)
	}
	if p.LastModified.IsZero() {
		t.Error("LastModified should be stamped after a successful commit")
	}
	// The sibling option is untouched.
	if p.Options[1].Price != 14000 {
		t.Errorf("sibling option price = %d, want 14000", p.Options[1].Price)
	}
}

func TestCommitEditInvalidPrice(t *testing.T) {
	client := &fakeEditClient{}
	editor := NewEditor(client, editableList())

	for _, raw := range []string{"abc", "0", "-500", ""} {
		if err := editor.BeginEdit(EditTarget{ProductID: 1, Field: FieldPrice, OptionID: 10}); err != nil {
			t.Fatal(err)
		}
		if err := editor.CommitEdit(context.Background(), raw); !errors.Is(err, models.ErrInvalidPrice) {
			t.Errorf("CommitEdit(%q) = %v, want ErrInvalidPrice", raw, err)
		}
	}
	if client.priceCalls != 0 {
		t.Errorf("priceCalls = %d, want 0", client.priceCalls)
	}
}

func TestCommitEditServerFailureKeepsLocalValue(t *testing.T) {
	client := &fakeEditClient{err: errors.New("boom")}
	list := editableList()
	editor := NewEditor(client, list)

	if err := editor.BeginEdit(EditTarget{ProductID: 1, Field: FieldPrice, OptionID: 10}); err != nil {
		t.Fatal(err)
	}
	if err := editor.CommitEdit(context.Background(), "9500"); err == nil {
		t.Fatal("expected commit error")
	}

	p, _ := list.Get(1)
	if p.Options[0].Price != 8000 {
		t.Errorf("local price = %d, want 8000 untouched", p.Options[0].Price)
	}
	if _, ok := editor.Editing(); ok {
		t.Error("edit should leave editable state even on failure")
	}
}

func TestCommitEditName(t *testing.T) {
	client := &fakeEditClient{}
	list := editableList()
	editor := NewEditor(client, list)

	if err := editor.BeginEdit(EditTarget{ProductID: 2, Field: FieldName}); err != nil {
		t.Fatal(err)
	}
	if err := editor.CommitEdit(context.Background(), "Reineta a la Plancha"); err != nil {
		t.Fatalf("CommitEdit: %v", err)
	}
	if client.updateCalls != 1 {
		t.Errorf("updateCalls = %d, want 1", client.updateCalls)
	}
	p, _ := list.Get(2)
	if p.NameEs != "Reineta a la Plancha" {
		t.Errorf("NameEs = %q", p.NameEs)
	}
}
