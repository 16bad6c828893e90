package source

import (
	"testing"

	"stcatalog/config"
)

func TestForKind(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	tests := []struct {
		kind    string
		input   string
		want    string
		wantErr bool
	}{
		{kind: "", want: "*source.GoogleSheets"},
		{kind: "gsheets", want: "*source.GoogleSheets"},
		{kind: "dir", input: "./sheets", want: "*source.Directory"},
		{kind: "EXCEL", input: "./catalogo.xlsx", want: "*source.Workbook"},
		{kind: "dir", wantErr: true},
		{kind: "excel", wantErr: true},
		{kind: "ftp", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.kind+"/"+tc.input, func(t *testing.T) {
			t.Parallel()
			src, err := ForKind(tc.kind, cfg, tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for kind %q", tc.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := typeName(src); got != tc.want {
				t.Fatalf("unexpected source type: want %s, got %s", tc.want, got)
			}
		})
	}
}

func typeName(src Source) string {
	switch src.(type) {
	case *GoogleSheets:
		return "*source.GoogleSheets"
	case *Directory:
		return "*source.Directory"
	case *Workbook:
		return "*source.Workbook"
	default:
		return "unknown"
	}
}
