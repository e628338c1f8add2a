package aggregator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	agg "kimoncrm-survey/internal/aggregator"
	"kimoncrm-survey/internal/domain"
)

func TestMultiplier(t *testing.T) {
	typicalFloor := &domain.Floor{IsTypical: true, RepeatCount: 3}
	plainFloor := &domain.Floor{}
	typicalRoom := &domain.Room{IsTypical: true, RepeatCount: 5}
	plainRoom := &domain.Room{}

	// 中心机柜：恒为 1
	require.Equal(t, 1, agg.Multiplier(nil, nil))

	require.Equal(t, 3, agg.Multiplier(typicalFloor, nil))
	require.Equal(t, 1, agg.Multiplier(plainFloor, nil))
	require.Equal(t, 15, agg.Multiplier(typicalFloor, typicalRoom))
	require.Equal(t, 3, agg.Multiplier(typicalFloor, plainRoom))
	require.Equal(t, 5, agg.Multiplier(plainFloor, typicalRoom))

	// typical 但 repeatCount 残缺（0/负数）按 1 兜底
	require.Equal(t, 1, agg.Multiplier(&domain.Floor{IsTypical: true}, nil))
	require.Equal(t, 1, agg.Multiplier(&domain.Floor{IsTypical: true, RepeatCount: -2}, nil))

	// 非 typical 的 repeatCount 不生效
	require.Equal(t, 1, agg.Multiplier(&domain.Floor{RepeatCount: 7}, nil))
}
