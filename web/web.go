// Package web serve o formulário do conversor para navegador.
//
// A página é estática e embutida no binário; ela chama GET romannumeral?query=N
// na mesma origem e exibe o campo "output" ou o "message" do envelope de erro.
package web

import (
	"bytes"
	"embed"
	"net/http"
	"time"
)

//go:embed static/index.html
var static embed.FS

// Handler serve a página do formulário.
func Handler() http.Handler {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		// o arquivo é embutido em tempo de compilação
		panic(err)
	}
	modTime := time.Now()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeContent(w, r, "index.html", modTime, bytes.NewReader(page))
	})
}
