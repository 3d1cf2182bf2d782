package boarddrivers

import (
	"errors"
	"slices"
	"testing"

	"github.com/biotinker/solenoid-ac/internal/board"
)

type testFactory struct {
	createErr error
}

func (f *testFactory) CreateBoard(config map[string]interface{}) (board.Board, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return board.NewFakeBoard(), nil
}

func (f *testFactory) ValidateConfig(config map[string]interface{}) error {
	return nil
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("test", &testFactory{}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if err := r.Register("test", &testFactory{}); err == nil {
		t.Error("registering the same name twice should fail")
	}
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("test", &testFactory{}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	b, err := r.Create("test", nil)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer b.Close() //nolint:errcheck

	if _, err := r.Create("missing", nil); err == nil {
		t.Error("Create() with an unknown driver should fail")
	}

	boom := errors.New("boom")
	if err := r.Register("broken", &testFactory{createErr: boom}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if _, err := r.Create("broken", nil); !errors.Is(err, boom) {
		t.Errorf("Create() error = %v, want %v", err, boom)
	}
}

func TestRegistryValidateConfig(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("test", &testFactory{}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	if err := r.ValidateConfig("test", map[string]interface{}{"anything": 1}); err != nil {
		t.Errorf("ValidateConfig() failed: %v", err)
	}
	if err := r.ValidateConfig("missing", nil); err == nil {
		t.Error("ValidateConfig() with an unknown driver should fail")
	}
}

func TestRegistryListDrivers(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"a", "b"} {
		if err := r.Register(name, &testFactory{}); err != nil {
			t.Fatalf("Register(%s) failed: %v", name, err)
		}
	}

	names := r.ListDrivers()
	if len(names) != 2 || !slices.Contains(names, "a") || !slices.Contains(names, "b") {
		t.Errorf("ListDrivers() = %v, want [a b]", names)
	}
}

func TestDefaultRegistryDrivers(t *testing.T) {
	// The built-in drivers register themselves via init.
	names := ListDrivers()
	for _, want := range []string{"fake", "cdev", "periph"} {
		if !slices.Contains(names, want) {
			t.Errorf("ListDrivers() = %v, missing %s", names, want)
		}
	}
}

func TestFakeDriverCreate(t *testing.T) {
	b, err := Create("fake", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Create(fake) failed: %v", err)
	}
	defer b.Close() //nolint:errcheck

	if _, err := b.GPIOPinByName("GPIO17"); err != nil {
		t.Errorf("fake board GPIOPinByName() failed: %v", err)
	}
}

func TestCdevDriverValidateConfig(t *testing.T) {
	if err := ValidateConfig("cdev", map[string]interface{}{"chip": "gpiochip1"}); err != nil {
		t.Errorf("ValidateConfig(cdev) failed: %v", err)
	}
	if err := ValidateConfig("cdev", map[string]interface{}{"bogus": true}); err == nil {
		t.Error("ValidateConfig(cdev) should reject unknown keys")
	}
}

func TestPeriphDriverValidateConfig(t *testing.T) {
	if err := ValidateConfig("periph", map[string]interface{}{}); err != nil {
		t.Errorf("ValidateConfig(periph) failed: %v", err)
	}
	if err := ValidateConfig("periph", map[string]interface{}{"bogus": true}); err == nil {
		t.Error("ValidateConfig(periph) should reject unknown keys")
	}
}
