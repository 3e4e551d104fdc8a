package env_test

import (
	"fmt"
	"testing"

	"github.com/reqpin/reqpin/pkg/env"
	"github.com/stretchr/testify/assert"
)

func TestGetBoolEnv(t *testing.T) {
	testCases := []struct {
		envVarValue string
		fallback    bool
		expected    bool
	}{
		{"", false, false},
		{"", true, true},
		{"false", true, false},
		{"  false  ", true, false},
		{"False", true, false},
		{"0", true, false},
		{"true", false, true},
		{"  true  ", false, true},
		{"True", false, true},
		{"1", false, true},
		{"foo", true, true},
		{"foo", false, false},
	}

	for i, testCase := range testCases {
		envVarName := fmt.Sprintf("TEST_GET_BOOL_ENV_%d", i)

		t.Run(envVarName, func(t *testing.T) {
			if testCase.envVarValue != "" {
				t.Setenv(envVarName, testCase.envVarValue)
			}

			actual := env.GetBoolEnv(envVarName, testCase.fallback)
			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestGetIntEnv(t *testing.T) {
	testCases := []struct {
		envVarValue string
		fallback    int
		expected    int
	}{
		{"", 10, 10},
		{"42", 10, 42},
		{" 42 ", 10, 42},
		{"-1", 10, -1},
		{"foo", 10, 10},
	}

	for i, testCase := range testCases {
		envVarName := fmt.Sprintf("TEST_GET_INT_ENV_%d", i)

		t.Run(envVarName, func(t *testing.T) {
			if testCase.envVarValue != "" {
				t.Setenv(envVarName, testCase.envVarValue)
			}

			actual := env.GetIntEnv(envVarName, testCase.fallback)
			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestGetStringEnv(t *testing.T) {
	testCases := []struct {
		envVarValue string
		fallback    string
		expected    string
	}{
		{"", "fallback", "fallback"},
		{"value", "fallback", "value"},
		{"  value  ", "fallback", "value"},
	}

	for i, testCase := range testCases {
		envVarName := fmt.Sprintf("TEST_GET_STRING_ENV_%d", i)

		t.Run(envVarName, func(t *testing.T) {
			if testCase.envVarValue != "" {
				t.Setenv(envVarName, testCase.envVarValue)
			}

			actual := env.GetStringEnv(envVarName, testCase.fallback)
			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestParseEnvs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		environmentVariables []string
		expectedVariables    map[string]string
	}{
		{
			[]string{},
			map[string]string{},
		},
		{
			[]string{"foobar"},
			map[string]string{},
		},
		{
			[]string{"foo=bar"},
			map[string]string{"foo": "bar"},
		},
		{
			[]string{"foo=bar", "goo=gar"},
			map[string]string{"foo": "bar", "goo": "gar"},
		},
		{
			[]string{"foo=bar   "},
			map[string]string{"foo": "bar   "},
		},
		{
			[]string{"foo   =bar   "},
			map[string]string{"foo": "bar   "},
		},
		{
			[]string{"foo=composite=bar"},
			map[string]string{"foo": "composite=bar"},
		},
	}

	for _, testCase := range testCases {
		actualVariables := env.ParseEnvs(testCase.environmentVariables)
		assert.Equal(t, testCase.expectedVariables, actualVariables)
	}
}

func TestLookupEnv(t *testing.T) {
	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		val, ok := env.LookupEnv("")
		assert.False(t, ok)
		assert.Empty(t, val)
	})

	t.Run("blank value is treated as not present", func(t *testing.T) {
		t.Setenv("TEST_LOOKUP_ENV_BLANK", "   ")

		val, ok := env.LookupEnv("TEST_LOOKUP_ENV_BLANK")
		assert.False(t, ok)
		assert.Empty(t, val)
	})

	t.Run("value is trimmed", func(t *testing.T) {
		t.Setenv("TEST_LOOKUP_ENV_TRIM", "  value  ")

		val, ok := env.LookupEnv("TEST_LOOKUP_ENV_TRIM")
		assert.True(t, ok)
		assert.Equal(t, "value", val)
	})
}
