package alloc

import (
	"errors"
	"net"
	"testing"

	"github.com/frrlab/frrlab/pkg/util"
)

func mustCIDR(t *testing.T, s string) *net.IPNet {
	t.Helper()
	ipNet, err := util.ParseIPv4CIDR(s)
	if err != nil {
		t.Fatalf("ParseIPv4CIDR(%q): %v", s, err)
	}
	return ipNet
}

func mustCIDRs(t *testing.T, ss ...string) []*net.IPNet {
	t.Helper()
	out := make([]*net.IPNet, 0, len(ss))
	for _, s := range ss {
		out = append(out, mustCIDR(t, s))
	}
	return out
}

func TestCandidates(t *testing.T) {
	cands := Candidates()

	if len(cands) != 254 {
		t.Fatalf("candidate count = %d, want 254", len(cands))
	}
	if got := cands[0].String(); got != "172.31.1.0/24" {
		t.Errorf("first candidate = %s, want 172.31.1.0/24", got)
	}
	if got := cands[253].String(); got != "172.31.254.0/24" {
		t.Errorf("last candidate = %s, want 172.31.254.0/24", got)
	}

	// Third octet must ascend 1..254; enumeration order is the
	// allocation order.
	for i, c := range cands {
		if int(c.IP.To4()[2]) != i+1 {
			t.Fatalf("candidate %d = %s, want third octet %d", i, c, i+1)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"identical /24", "172.31.1.0/24", "172.31.1.0/24", true},
		{"disjoint /24s", "172.31.1.0/24", "172.31.2.0/24", false},
		{"larger contains smaller", "172.31.0.0/16", "172.31.9.0/24", true},
		{"smaller inside larger", "172.31.9.0/24", "172.31.0.0/16", true},
		{"adjacent blocks", "10.0.0.0/25", "10.0.0.128/25", false},
		{"unrelated ranges", "10.0.0.0/8", "192.168.0.0/16", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustCIDR(t, tt.a)
			b := mustCIDR(t, tt.b)
			if got := Overlaps(a, b); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// symmetric by contract
			if got := Overlaps(b, a); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestSelectFreeBlock(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		used       []string
		want       string
		wantErr    bool
	}{
		{
			name:       "no used blocks picks first",
			candidates: []string{"172.31.1.0/24", "172.31.2.0/24"},
			want:       "172.31.1.0/24",
		},
		{
			name:       "first taken picks second",
			candidates: []string{"172.31.1.0/24", "172.31.2.0/24"},
			used:       []string{"172.31.1.0/24"},
			want:       "172.31.2.0/24",
		},
		{
			name:       "supernet blocks all contained candidates",
			candidates: []string{"172.31.1.0/24", "172.31.2.0/24", "10.1.0.0/24"},
			used:       []string{"172.31.0.0/16"},
			want:       "10.1.0.0/24",
		},
		{
			name:       "all candidates taken",
			candidates: []string{"172.31.1.0/24", "172.31.2.0/24"},
			used:       []string{"172.31.1.0/24", "172.31.2.0/24"},
			wantErr:    true,
		},
		{
			name:    "no candidates at all",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectFreeBlock(mustCIDRs(t, tt.candidates...), mustCIDRs(t, tt.used...))
			if tt.wantErr {
				var exhausted *PoolExhaustedError
				if !errors.As(err, &exhausted) {
					t.Fatalf("error = %v, want *PoolExhaustedError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectFreeBlock: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("selected = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelectFreeBlock_Deterministic(t *testing.T) {
	used := mustCIDRs(t, "172.31.1.0/24", "172.31.3.0/24")

	first, err := SelectFreeBlock(Candidates(), used)
	if err != nil {
		t.Fatal(err)
	}
	second, err := SelectFreeBlock(Candidates(), used)
	if err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("repeated selection differs: %s vs %s", first, second)
	}
	if first.String() != "172.31.2.0/24" {
		t.Errorf("selected = %s, want 172.31.2.0/24", first)
	}
}

func TestStaticSource(t *testing.T) {
	src := Static(mustCIDRs(t, "172.31.5.0/24"))
	blocks := src.UsedBlocks()
	if len(blocks) != 1 || blocks[0].String() != "172.31.5.0/24" {
		t.Errorf("UsedBlocks() = %v, want [172.31.5.0/24]", blocks)
	}
}
