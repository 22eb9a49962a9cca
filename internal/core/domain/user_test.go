package domain

import "testing"

func usersFixture() []*User {
	return []*User{
		{ID: 1, Username: "biz1", Role: &Role{ID: 10, Name: RoleBusiness}},
		{ID: 2, Username: "cli1", Role: &Role{ID: 11, Name: RoleClient}},
		{ID: 3, Username: "root", IsAdmin: true},
		{ID: 4, Username: "biz2", Role: &Role{ID: 10, Name: RoleBusiness}},
	}
}

func TestFilterByScope(t *testing.T) {
	users := usersFixture()

	biz := FilterByScope(users, ScopeBusiness)
	if len(biz) != 2 || biz[0].Username != "biz1" || biz[1].Username != "biz2" {
		t.Fatalf("unexpected business view: %+v", biz)
	}

	cli := FilterByScope(users, ScopeClient)
	if len(cli) != 1 || cli[0].Username != "cli1" {
		t.Fatalf("unexpected client view: %+v", cli)
	}

	if all := FilterByScope(users, ScopeAll); len(all) != 4 {
		t.Fatalf("expected all 4 users, got %d", len(all))
	}
}

func TestParseListScope(t *testing.T) {
	cases := map[string]ListScope{
		"business": ScopeBusiness,
		"client":   ScopeClient,
		"all":      ScopeAll,
		"":         ScopeAll,
		"vendors":  ScopeAll,
		"BUSINESS": ScopeAll,
		"Client":   ScopeAll,
		" client ": ScopeAll,
	}
	for in, want := range cases {
		if got := ParseListScope(in); got != want {
			t.Errorf("ParseListScope(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListScope_TotalLabel(t *testing.T) {
	if got := ScopeBusiness.TotalLabel(1); got != "Total business users: 1" {
		t.Errorf("unexpected label %q", got)
	}
	if got := ScopeClient.TotalLabel(0); got != "Total client users: 0" {
		t.Errorf("unexpected label %q", got)
	}
	if got := ScopeAll.TotalLabel(3); got != "Total users[Business/Client]: 3" {
		t.Errorf("unexpected label %q", got)
	}
}

func TestUser_DisplayRoleName(t *testing.T) {
	users := usersFixture()
	if got := users[0].DisplayRoleName(); got != RoleBusiness {
		t.Errorf("expected Business, got %q", got)
	}
	if got := users[2].DisplayRoleName(); got != RoleSuperuser {
		t.Errorf("expected Superuser for admin, got %q", got)
	}
	if got := (&User{}).DisplayRoleName(); got != "" {
		t.Errorf("expected empty role for plain user, got %q", got)
	}
}
