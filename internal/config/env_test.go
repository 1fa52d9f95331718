package config

import (
	"reflect"
	"testing"
)

func TestGetEnv(t *testing.T) {
	if got := GetEnv("SPINWHEEL_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("unset variable: got %q", got)
	}

	t.Setenv("SPINWHEEL_TEST_STR", "value")
	if got := GetEnv("SPINWHEEL_TEST_STR", "fallback"); got != "value" {
		t.Errorf("set variable: got %q", got)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	if got := GetEnvAsBool("SPINWHEEL_TEST_UNSET", true); !got {
		t.Error("unset variable should return the default")
	}

	t.Setenv("SPINWHEEL_TEST_BOOL", "false")
	if got := GetEnvAsBool("SPINWHEEL_TEST_BOOL", true); got {
		t.Error("explicit false was not honored")
	}

	t.Setenv("SPINWHEEL_TEST_BOOL", "not-a-bool")
	if got := GetEnvAsBool("SPINWHEEL_TEST_BOOL", true); !got {
		t.Error("unparseable value should fall back to the default")
	}
}

func TestGetEnvAsInt(t *testing.T) {
	if got := GetEnvAsInt("SPINWHEEL_TEST_UNSET", 11); got != 11 {
		t.Errorf("unset variable: got %d", got)
	}

	t.Setenv("SPINWHEEL_TEST_INT", "25")
	if got := GetEnvAsInt("SPINWHEEL_TEST_INT", 11); got != 25 {
		t.Errorf("set variable: got %d", got)
	}

	t.Setenv("SPINWHEEL_TEST_INT", "eleven")
	if got := GetEnvAsInt("SPINWHEEL_TEST_INT", 11); got != 11 {
		t.Errorf("unparseable value: got %d", got)
	}
}

func TestGetEnvAsSlice(t *testing.T) {
	def := []string{"localhost:3000"}
	if got := GetEnvAsSlice("SPINWHEEL_TEST_UNSET", ",", def); !reflect.DeepEqual(got, def) {
		t.Errorf("unset variable: got %v", got)
	}

	t.Setenv("SPINWHEEL_TEST_SLICE", "a.example.com,b.example.com")
	want := []string{"a.example.com", "b.example.com"}
	if got := GetEnvAsSlice("SPINWHEEL_TEST_SLICE", ",", def); !reflect.DeepEqual(got, want) {
		t.Errorf("set variable: got %v", got)
	}
}
