package helper

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/x", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendString("ok")
	})

	cases := []struct {
		name    string
		url     string
		page    int
		perPage int
		offset  int
	}{
		{"default", "/x", 1, 20, 0},
		{"page+per_page", "/x?page=3&per_page=10", 3, 10, 20},
		{"alias limit", "/x?limit=5", 1, 5, 0},
		{"per_page di-cap max", "/x?per_page=500", 1, 100, 0},
		{"page negatif jadi 1", "/x?page=-2", 1, 20, 0},
		{"per_page nol jadi default", "/x?per_page=0", 1, 20, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.url, nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			_, _ = io.ReadAll(resp.Body)
			if got.Page != tc.page || got.PerPage != tc.perPage || got.Offset != tc.offset {
				t.Fatalf("paging = %+v, want page=%d perPage=%d offset=%d",
					got, tc.page, tc.perPage, tc.offset)
			}
		})
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	if p.TotalPages != 3 {
		t.Fatalf("total_pages = %d", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("has_next=%v has_prev=%v", p.HasNext, p.HasPrev)
	}

	p = BuildPaginationFromPage(0, 1, 20)
	if p.TotalPages != 1 || p.HasNext || p.HasPrev {
		t.Fatalf("pagination kosong = %+v", p)
	}
}

func TestStatusToErrorCode(t *testing.T) {
	cases := map[int]string{
		fiber.StatusBadRequest:          "BAD_REQUEST",
		fiber.StatusUnauthorized:        "UNAUTHORIZED",
		fiber.StatusForbidden:           "FORBIDDEN",
		fiber.StatusNotFound:            "NOT_FOUND",
		fiber.StatusConflict:            "CONFLICT",
		fiber.StatusInternalServerError: "INTERNAL_ERROR",
		fiber.StatusTeapot:              "ERROR",
	}
	for status, want := range cases {
		if got := statusToErrorCode(status); got != want {
			t.Fatalf("statusToErrorCode(%d) = %s, want %s", status, got, want)
		}
	}
}

func TestJsonErrorShape(t *testing.T) {
	app := fiber.New()
	app.Get("/err", func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusBadRequest, "Kursi sudah terisi")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	want := `{"success":false,"message":"Kursi sudah terisi","error_code":"BAD_REQUEST"}`
	if string(body) != want {
		t.Fatalf("body = %s", body)
	}
}
