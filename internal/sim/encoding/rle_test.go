package encoding

import "testing"

func TestRLE_RoundTrip(t *testing.T) {
	in := make([]uint16, 0, 600)
	in = append(in, 0, 0, 0, 1, 1, 2)
	for i := 0; i < 512; i++ {
		in = append(in, 3)
	}
	in = append(in, 0, 2, 2, 2)

	enc := EncodeRLE(in)
	out, err := DecodeRLE(enc)
	if err != nil {
		t.Fatalf("DecodeRLE: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len mismatch: got %d want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, out[i], in[i])
		}
	}
}

func TestRLE_Empty(t *testing.T) {
	enc := EncodeRLE(nil)
	out, err := DecodeRLE(enc)
	if err != nil {
		t.Fatalf("DecodeRLE: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("want empty, got %d indexes", len(out))
	}
}

func TestRLE_BadInput(t *testing.T) {
	if _, err := DecodeRLE("not base64!!"); err == nil {
		t.Fatal("want error for invalid base64")
	}
}
