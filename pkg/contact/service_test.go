package contact

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubcontatos/contacthub/pkg/storage"
)

func setupContactTest(t *testing.T) (*Service, uuid.UUID) {
	t.Helper()
	store, err := storage.NewFSStorage(t.TempDir(), "/media")
	require.NoError(t, err)
	svc := NewService(NewInMemRepository(), WithPictureStorage(store), WithPageSize(3))
	return svc, uuid.New()
}

func validForm() ContactForm {
	return ContactForm{
		FirstName: "maria",
		LastName:  "oliveira",
		Phone:     "(11) 99999-8888",
		Email:     "Maria@Example.com",
	}
}

func TestCreateContactNormalizesFields(t *testing.T) {
	svc, owner := setupContactTest(t)

	c, err := svc.Create(context.Background(), owner, validForm())
	require.NoError(t, err)
	assert.Equal(t, "Maria", c.FirstName)
	assert.Equal(t, "Oliveira", c.LastName)
	assert.Equal(t, "11999998888", c.Phone)
	assert.Equal(t, "maria@example.com", c.Email)
	assert.Equal(t, "Maria Oliveira", c.FullName())
	assert.True(t, c.Show)
	assert.Equal(t, owner, c.OwnerID)
}

func TestCreateContactValidation(t *testing.T) {
	svc, owner := setupContactTest(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		mutate    func(*ContactForm)
		wantField string
	}{
		{name: "missing first name", mutate: func(f *ContactForm) { f.FirstName = "" }, wantField: "first_name"},
		{name: "digit in first name", mutate: func(f *ContactForm) { f.FirstName = "Mar1a" }, wantField: "first_name"},
		{name: "short last name", mutate: func(f *ContactForm) { f.LastName = "O" }, wantField: "last_name"},
		{name: "missing phone", mutate: func(f *ContactForm) { f.Phone = "" }, wantField: "phone"},
		{name: "short phone", mutate: func(f *ContactForm) { f.Phone = "11 9999" }, wantField: "phone"},
		{name: "long phone", mutate: func(f *ContactForm) { f.Phone = "1234567890123456" }, wantField: "phone"},
		{name: "bad email", mutate: func(f *ContactForm) { f.Email = "maria@example" }, wantField: "email"},
		{name: "short description", mutate: func(f *ContactForm) { f.Description = "abc" }, wantField: "description"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)
			_, err := svc.Create(ctx, owner, form)
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tc.wantField)
		})
	}
}

func TestCreateContactUnknownCategory(t *testing.T) {
	svc, owner := setupContactTest(t)

	form := validForm()
	missing := uuid.New()
	form.CategoryID = &missing

	_, err := svc.Create(context.Background(), owner, form)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestContactOwnerScoping(t *testing.T) {
	svc, owner := setupContactTest(t)
	other := uuid.New()
	ctx := context.Background()

	c, err := svc.Create(ctx, owner, validForm())
	require.NoError(t, err)

	_, err = svc.Get(ctx, other, c.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)

	_, err = svc.Update(ctx, other, c.ID, validForm())
	assert.ErrorIs(t, err, ErrContactNotFound)

	err = svc.Delete(ctx, other, c.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)

	page, err := svc.List(ctx, other, "", 1)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestListContactsSearchAndPaging(t *testing.T) {
	svc, owner := setupContactTest(t)
	ctx := context.Background()

	names := []string{"Ana", "Bruno", "Carla", "Daniel", "Anabela"}
	for _, name := range names {
		form := validForm()
		form.FirstName = name
		_, err := svc.Create(ctx, owner, form)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, owner, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, page.Contacts, 3)

	page2, err := svc.List(ctx, owner, "", 2)
	require.NoError(t, err)
	assert.Len(t, page2.Contacts, 2)

	found, err := svc.List(ctx, owner, "ana", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Total)
}

func TestUpdateContact(t *testing.T) {
	svc, owner := setupContactTest(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, owner, validForm())
	require.NoError(t, err)

	cat, err := svc.CreateCategory(ctx, "Friends")
	require.NoError(t, err)

	form := validForm()
	form.FirstName = "mariana"
	form.Description = "college friend"
	form.CategoryID = &cat.ID

	updated, err := svc.Update(ctx, owner, c.ID, form)
	require.NoError(t, err)
	assert.Equal(t, "Mariana", updated.FirstName)
	assert.Equal(t, "college friend", updated.Description)
	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, cat.ID, *updated.CategoryID)
}

func TestUploadAndReplacePicture(t *testing.T) {
	svc, owner := setupContactTest(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, owner, validForm())
	require.NoError(t, err)

	url, err := svc.PictureURL(ctx, owner, c.ID)
	require.NoError(t, err)
	assert.Empty(t, url)

	payload := []byte("first-picture")
	key1, err := svc.UploadPicture(ctx, owner, c.ID, bytes.NewReader(payload), int64(len(payload)), "image/png")
	require.NoError(t, err)

	url, err = svc.PictureURL(ctx, owner, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "/media/"+key1, url)

	payload2 := []byte("second-picture")
	key2, err := svc.UploadPicture(ctx, owner, c.ID, bytes.NewReader(payload2), int64(len(payload2)), "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, key1, key2)

	url, err = svc.PictureURL(ctx, owner, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "/media/"+key2, url)
}

func TestUploadPictureRejectsBadType(t *testing.T) {
	svc, owner := setupContactTest(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, owner, validForm())
	require.NoError(t, err)

	_, err = svc.UploadPicture(ctx, owner, c.ID, bytes.NewReader([]byte("x")), 1, "text/html")
	assert.ErrorIs(t, err, storage.ErrInvalidFileType)
}

func TestDeleteContact(t *testing.T) {
	svc, owner := setupContactTest(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, owner, validForm())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, c.ID))
	_, err = svc.Get(ctx, owner, c.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestCategories(t *testing.T) {
	svc, _ := setupContactTest(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Work")
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "Family")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "   ")
	var errs ValidationErrors
	assert.ErrorAs(t, err, &errs)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Family", cats[0].Name)
	assert.Equal(t, "Work", cats[1].Name)
}
