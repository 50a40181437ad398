package factory

import "testing"

type sinkStub struct{ addr string }

type sinkConf struct {
	Addr string `json:"addr"`
}

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry[*sinkStub]()
	if err := reg.Register("stub", func(conf map[string]any) (*sinkStub, error) {
		var c sinkConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sinkStub{addr: c.Addr}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "stub", Conf: map[string]any{"addr": "localhost:9"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.addr != "localhost:9" {
		t.Fatalf("expected addr got %q", inst.addr)
	}
}

func TestRegistryErrors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("y", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "z"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestDecodeNumbers(t *testing.T) {
	var c struct {
		Port int     `json:"port"`
		Rate float64 `json:"rate"`
	}
	if err := Decode(map[string]any{"port": 8080, "rate": 0.5}, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Port != 8080 || c.Rate != 0.5 {
		t.Fatalf("unexpected %+v", c)
	}
}
