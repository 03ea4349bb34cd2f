package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ypms/internal/core/domain"
)

func TestKeyFor_Split(t *testing.T) {
	t.Parallel()

	key := domain.KeyFor("yopr", "user/pkg")
	assert.Equal(t, domain.PackageKey("yopr:user/pkg"), key)

	src, ref := key.Split()
	assert.Equal(t, "yopr", src)
	assert.Equal(t, "user/pkg", ref)

	rec := domain.InstalledRecord{Source: "yopr", Package: "user/pkg"}
	assert.Equal(t, key, rec.Key())
}

func TestParsePackageRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    domain.PackageRef
		wantErr bool
	}{
		{in: "user/pkg", want: domain.PackageRef{User: "user", Name: "pkg"}},
		{in: " user / pkg ", want: domain.PackageRef{User: "user", Name: "pkg"}},
		{in: "pkg", wantErr: true},
		{in: "/pkg", wantErr: true},
		{in: "user/", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := domain.ParsePackageRef(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidPackageRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.User+"/"+tt.want.Name, got.String())
		})
	}
}

func TestValidateSourceName(t *testing.T) {
	t.Parallel()

	require.NoError(t, domain.ValidateSourceName("yopr"))
	for _, bad := range []string{"", "a:b", "a/b", " yopr"} {
		require.ErrorIs(t, domain.ValidateSourceName(bad), domain.ErrInvalidSourceName, bad)
	}
}

func TestIsWildcardVersion(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"", "latest", "*", " latest "} {
		assert.True(t, domain.IsWildcardVersion(v), v)
	}
	for _, v := range []string{"1.0", "stable", "Latest"} {
		assert.False(t, domain.IsWildcardVersion(v), v)
	}
}
