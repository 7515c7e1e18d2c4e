package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

// buildSweetWhere arma la cláusula WHERE y sus argumentos posicionales a partir del filtro.
// Los filtros vacíos se omiten; sin filtros devuelve "" y ningún argumento.
func buildSweetWhere(f repository.SweetFilter) (string, []any) {
	var conds []string
	var args []any
	pos := 1
	if f.Name != "" {
		conds = append(conds, fmt.Sprintf(`name ILIKE $%d ESCAPE '\'`, pos))
		args = append(args, "%"+escapeLike(f.Name)+"%")
		pos++
	}
	if f.Category != "" {
		conds = append(conds, fmt.Sprintf("category = $%d", pos))
		args = append(args, f.Category)
		pos++
	}
	if f.MinPrice != nil {
		conds = append(conds, fmt.Sprintf("price >= $%d", pos))
		args = append(args, *f.MinPrice)
		pos++
	}
	if f.MaxPrice != nil {
		conds = append(conds, fmt.Sprintf("price <= $%d", pos))
		args = append(args, *f.MaxPrice)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildSweetSet arma la lista SET de un update parcial. $1 queda reservado para el id;
// updated_at siempre se escribe y va al final.
func buildSweetSet(p repository.SweetPatch) (string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)+1))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Quantity != nil {
		add("quantity", *p.Quantity)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.ImageURL != nil {
		add("image_url", *p.ImageURL)
	}
	add("updated_at", p.UpdatedAt)
	return strings.Join(sets, ", "), args
}
