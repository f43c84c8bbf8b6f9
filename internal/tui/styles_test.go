package tui

import (
	"strings"
	"testing"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

func TestStatusStyle(t *testing.T) {
	for _, s := range []domain.LeaveStatus{domain.StatusPending, domain.StatusApproved, domain.StatusRejected, "unknown"} {
		t.Run(string(s), func(t *testing.T) {
			rendered := StatusStyle(s).Render(s.Label())
			if !strings.Contains(rendered, s.Label()) {
				t.Errorf("StatusStyle(%q) rendered %q", s, rendered)
			}
		})
	}
}

func TestRoleBadge(t *testing.T) {
	if got := RoleBadge(domain.RoleSupervisor); !strings.Contains(got, "[supervisor]") {
		t.Errorf("got %q", got)
	}
	if got := RoleBadge(""); got != "" {
		t.Errorf("empty role should render nothing, got %q", got)
	}
}

func TestHelpItemsFor(t *testing.T) {
	items := helpItemsFor("http://127.0.0.1:8000/api", "http://127.0.0.1:8000/admin/")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].url != "http://127.0.0.1:8000/api/" {
		t.Errorf("api link = %q", items[1].url)
	}
	if len(helpItemsFor("", "")) != 0 {
		t.Error("no links without urls")
	}

	out := helpView(items, 1)
	if !strings.Contains(out, "> ") || !strings.Contains(out, "Browsable API") {
		t.Errorf("help view missing cursor or link:\n%s", out)
	}
}

func TestShimmerLogo(t *testing.T) {
	if got := renderShimmerLogo(0); !strings.Contains(got, "L") {
		t.Errorf("logo = %q", got)
	}
	if clampByte(300) != 255 || clampByte(-1) != 0 {
		t.Error("clampByte out of range")
	}
}
