package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tarantool/go-txn/internal/options"
)

type backendOptions struct {
	maxTxnOps int
	function  string
}

func defaults() backendOptions {
	return backendOptions{maxTxnOps: 128, function: "txn"}
}

func TestApplyOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		constructor options.OptionConstructor[backendOptions]
		callbacks   []options.OptionCallback[backendOptions]
		expected    backendOptions
	}{
		{
			name:        "nil constructor and no callbacks",
			constructor: nil,
			callbacks:   nil,
			expected:    backendOptions{maxTxnOps: 0, function: ""},
		},
		{
			name:        "defaults only",
			constructor: defaults,
			callbacks:   nil,
			expected:    backendOptions{maxTxnOps: 128, function: "txn"},
		},
		{
			name:        "callback overrides default",
			constructor: defaults,
			callbacks: []options.OptionCallback[backendOptions]{
				func(o *backendOptions) { o.maxTxnOps = 16 },
			},
			expected: backendOptions{maxTxnOps: 16, function: "txn"},
		},
		{
			name:        "callbacks applied in order",
			constructor: defaults,
			callbacks: []options.OptionCallback[backendOptions]{
				func(o *backendOptions) { o.maxTxnOps = 16 },
				func(o *backendOptions) { o.maxTxnOps = 32 },
			},
			expected: backendOptions{maxTxnOps: 32, function: "txn"},
		},
		{
			name:        "nil callback is skipped",
			constructor: defaults,
			callbacks: []options.OptionCallback[backendOptions]{
				nil,
				func(o *backendOptions) { o.function = "other" },
			},
			expected: backendOptions{maxTxnOps: 128, function: "other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, options.ApplyOptions(tt.constructor, tt.callbacks))
		})
	}
}
