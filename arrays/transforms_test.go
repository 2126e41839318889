package arrays_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/foresight/arrays"
)

func TestMap_String(t *testing.T) {
	params := []string{" address to", "uint256 amount "}
	trimmed := arrays.Map(params, strings.TrimSpace)

	require.Equal(t, []string{"address to", "uint256 amount"}, trimmed)
}

func TestMap_Empty(t *testing.T) {
	transformed := arrays.Map([]int{}, func(input int) int { return input + 1 })

	require.Len(t, transformed, 0)
}

func TestMapWithError(t *testing.T) {
	double := func(_ int, input int) (int, error) { return input * 2, nil }
	transformed, err := arrays.MapWithError([]int{1, 2, 3}, double)

	require.NoError(t, err)
	require.Equal(t, []int{2, 4, 6}, transformed)
}

func TestMapWithError_StopsAtFirstError(t *testing.T) {
	seen := []int{}
	failOnSecond := func(idx int, input int) (int, error) {
		seen = append(seen, idx)
		if idx == 1 {
			return 0, errors.New("bad element")
		}
		return input, nil
	}

	transformed, err := arrays.MapWithError([]int{1, 2, 3}, failOnSecond)

	require.Error(t, err)
	require.Nil(t, transformed)
	require.Equal(t, []int{0, 1}, seen)
}

func TestFilter_Int(t *testing.T) {
	chainIDs := []uint64{1, 5, 137, 80001}
	mainnets := arrays.Filter(chainIDs, func(id uint64) bool { return id != 5 && id != 80001 })

	require.Equal(t, []uint64{1, 137}, mainnets)
}

func TestFilter_String(t *testing.T) {
	arr := []string{"address", "", "uint256", ""}
	nonEmpty := arrays.Filter(arr, func(input string) bool { return input != "" })

	require.Equal(t, []string{"address", "uint256"}, nonEmpty)
}
