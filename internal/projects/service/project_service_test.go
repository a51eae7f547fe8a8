package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wys-platform/project-service/internal/projects/domain"
	"github.com/wys-platform/project-service/internal/projects/siblings"
)

func newTestService(lk *fakeLookuper) (*ProjectService, *memStore) {
	store := newMemStore()
	return NewProjectService(store, NewAssembler(lk, false)), store
}

func TestProjectService_CreateAndGet(t *testing.T) {
	svc, _ := newTestService(newFakeLookuper())
	ctx := context.Background()

	p, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "  Kitchen  ", M2Ref: ref(10)})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", p.Name)
	assert.Equal(t, int64(7), p.UserID)

	got, err := svc.Get(ctx, 7, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), *got.M2Ref)
	assert.Nil(t, got.PriceRef)
}

func TestProjectService_CreateRequiresName(t *testing.T) {
	svc, store := newTestService(newFakeLookuper())

	_, err := svc.Create(context.Background(), 7, domain.CreateProjectInput{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrNameRequired)
	assert.Empty(t, store.rows)
}

func TestProjectService_DuplicateNameLeavesStoreUnchanged(t *testing.T) {
	svc, store := newTestService(newFakeLookuper())
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "Kitchen"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, 7, domain.CreateProjectInput{Name: "Kitchen"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.Len(t, store.rows, 1)

	// another owner may reuse the name
	_, err = svc.Create(ctx, 8, domain.CreateProjectInput{Name: "Kitchen"})
	assert.NoError(t, err)
}

func TestProjectService_OwnerIsolation(t *testing.T) {
	lk := newFakeLookuper()
	svc, _ := newTestService(lk)
	ctx := context.Background()

	p, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "Mine", LocationRef: ref(3)})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 8, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Detail(ctx, 8, p.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Location(ctx, 8, p.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 8, p.ID), domain.ErrNotFound)
	assert.Empty(t, lk.kindsCalled(), "no sibling is called for foreign projects")

	list, err := svc.List(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectService_PartialUpdateKeepsReferences(t *testing.T) {
	svc, _ := newTestService(newFakeLookuper())
	ctx := context.Background()

	p, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "Old", M2Ref: ref(1), PriceRef: ref(2)})
	require.NoError(t, err)

	name := "New"
	updated, err := svc.Update(ctx, 7, p.ID, domain.UpdateProjectInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	require.NotNil(t, updated.M2Ref)
	assert.Equal(t, int64(1), *updated.M2Ref)
	require.NotNil(t, updated.PriceRef)
	assert.Equal(t, int64(2), *updated.PriceRef)
}

func TestProjectService_UpdateClearsAndSetsReferences(t *testing.T) {
	svc, _ := newTestService(newFakeLookuper())
	ctx := context.Background()

	p, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "P", M2Ref: ref(1)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 7, p.ID, domain.UpdateProjectInput{
		M2Ref:     domain.OptionalRef{Set: true},
		LayoutRef: domain.OptionalRef{Set: true, Value: ref(30)},
	})
	require.NoError(t, err)
	assert.Equal(t, "P", updated.Name)
	assert.Nil(t, updated.M2Ref)
	assert.Equal(t, int64(30), *updated.LayoutRef)
}

func TestProjectService_UpdateErrors(t *testing.T) {
	svc, _ := newTestService(newFakeLookuper())
	ctx := context.Background()

	a, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 7, domain.CreateProjectInput{Name: "B"})
	require.NoError(t, err)

	blank := " "
	_, err = svc.Update(ctx, 7, a.ID, domain.UpdateProjectInput{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	taken := "B"
	_, err = svc.Update(ctx, 7, a.ID, domain.UpdateProjectInput{Name: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	name := "C"
	_, err = svc.Update(ctx, 7, 999, domain.UpdateProjectInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_Delete(t *testing.T) {
	svc, _ := newTestService(newFakeLookuper())
	ctx := context.Background()

	p, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "Gone"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 7, p.ID))
	_, err = svc.Get(ctx, 7, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 7, p.ID), domain.ErrNotFound)
}

func TestProjectService_Detail(t *testing.T) {
	lk := newFakeLookuper().
		found(domain.KindM2, "42 sqm").
		set(domain.KindLayout, siblings.Upstream(domain.KindLayout))
	svc, _ := newTestService(lk)
	ctx := context.Background()

	ok, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "Fine", M2Ref: ref(10)})
	require.NoError(t, err)
	d, err := svc.Detail(ctx, 7, ok.ID, "Bearer t")
	require.NoError(t, err)
	assert.Equal(t, "42 sqm", d.M2)
	assert.Equal(t, "Fine", d.Name)

	broken, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "Broken", M2Ref: ref(10), LayoutRef: ref(20)})
	require.NoError(t, err)
	d, err = svc.Detail(ctx, 7, broken.ID, "Bearer t")
	assert.Nil(t, d)
	assert.EqualError(t, err, "cannot connect to the layout module")

	_, err = svc.AllDetails(ctx, 7, "Bearer t")
	assert.Error(t, err, "one broken project fails the batch")
}

func TestProjectService_AllDetailsInStoreOrder(t *testing.T) {
	lk := newFakeLookuper().found(domain.KindTime, "2 weeks")
	svc, _ := newTestService(lk)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: name, TimeRef: ref(1)})
		require.NoError(t, err)
	}

	out, err := svc.AllDetails(ctx, 7, "")
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, name := range []string{"first", "second", "third"} {
		assert.Equal(t, name, out[i].Name)
		assert.Equal(t, "2 weeks", out[i].Time)
	}

	empty, err := svc.AllDetails(ctx, 9, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProjectService_Location(t *testing.T) {
	lk := newFakeLookuper().found(domain.KindLocation, "Valencia").found(domain.KindM2, "unused")
	svc, _ := newTestService(lk)
	ctx := context.Background()

	p, err := svc.Create(ctx, 7, domain.CreateProjectInput{Name: "Loc", LocationRef: ref(5), M2Ref: ref(6)})
	require.NoError(t, err)

	loc, err := svc.Location(ctx, 7, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Valencia", loc)
	assert.Equal(t, []domain.Kind{domain.KindLocation}, lk.kindsCalled())
}
