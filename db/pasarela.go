// backend/db/pasarela.go
package db

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backend/recursos"
)

// Pasarela implementa recursos.Gateway sobre PostgreSQL. Las consultas se
// arman con nombres de tabla y columna que provienen únicamente del catálogo
// de recursos; los valores viajan siempre como parámetros.
type Pasarela struct {
	pool *pgxpool.Pool
}

func NuevaPasarela(pool *pgxpool.Pool) *Pasarela {
	return &Pasarela{pool: pool}
}

func (p *Pasarela) Select(ctx context.Context, tabla string, filtro recursos.Filtro, orden recursos.Orden, limite, desplazamiento int) ([]recursos.Registro, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT * FROM ")
	sb.WriteString(tabla)
	agregarCondiciones(&sb, &args, filtro)

	if orden.Columna != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orden.Columna)
		if orden.Descendente {
			sb.WriteString(" DESC")
		}
	}
	if limite > 0 {
		args = append(args, limite)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if desplazamiento > 0 {
		args = append(args, desplazamiento)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := p.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, &recursos.ErrorAlmacenamiento{Causa: err}
	}
	defer rows.Close()

	lista := make([]recursos.Registro, 0)
	for rows.Next() {
		registro, err := filaARegistro(rows)
		if err != nil {
			return nil, &recursos.ErrorAlmacenamiento{Causa: err}
		}
		lista = append(lista, registro)
	}
	if err := rows.Err(); err != nil {
		return nil, &recursos.ErrorAlmacenamiento{Causa: err}
	}
	return lista, nil
}

func (p *Pasarela) Insert(ctx context.Context, tabla string, registro recursos.Registro) (recursos.Registro, error) {
	columnas := clavesOrdenadas(registro)
	marcadores := make([]string, len(columnas))
	args := make([]any, len(columnas))
	for i, columna := range columnas {
		marcadores[i] = fmt.Sprintf("$%d", i+1)
		args[i] = registro[columna]
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		tabla, strings.Join(columnas, ", "), strings.Join(marcadores, ", "),
	)
	return p.unaFila(ctx, sql, args, false)
}

func (p *Pasarela) Update(ctx context.Context, tabla string, id int, parche recursos.Registro) (recursos.Registro, error) {
	columnas := clavesOrdenadas(parche)
	asignaciones := make([]string, len(columnas))
	args := make([]any, 0, len(columnas)+1)
	for i, columna := range columnas {
		args = append(args, parche[columna])
		asignaciones[i] = fmt.Sprintf("%s = $%d", columna, len(args))
	}
	args = append(args, id)

	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING *",
		tabla, strings.Join(asignaciones, ", "), len(args),
	)
	return p.unaFila(ctx, sql, args, true)
}

func (p *Pasarela) Delete(ctx context.Context, tabla string, id int) error {
	etiqueta, err := p.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1", tabla), id)
	if err != nil {
		return &recursos.ErrorAlmacenamiento{Causa: err}
	}
	if etiqueta.RowsAffected() == 0 {
		return recursos.ErrNoEncontrado
	}
	return nil
}

// unaFila ejecuta una sentencia con RETURNING * y devuelve la fila única.
// Cuando la sentencia no toca ninguna fila, faltaEsNoEncontrado decide si
// eso es un id inexistente o un fallo de la pasarela.
func (p *Pasarela) unaFila(ctx context.Context, sql string, args []any, faltaEsNoEncontrado bool) (recursos.Registro, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, &recursos.ErrorAlmacenamiento{Causa: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, &recursos.ErrorAlmacenamiento{Causa: err}
		}
		if faltaEsNoEncontrado {
			return nil, recursos.ErrNoEncontrado
		}
		return nil, &recursos.ErrorAlmacenamiento{Causa: pgx.ErrNoRows}
	}
	registro, err := filaARegistro(rows)
	if err != nil {
		return nil, &recursos.ErrorAlmacenamiento{Causa: err}
	}
	return registro, nil
}

func filaARegistro(rows pgx.Rows) (recursos.Registro, error) {
	valores, err := rows.Values()
	if err != nil {
		return nil, err
	}
	registro := recursos.Registro{}
	for i, descripcion := range rows.FieldDescriptions() {
		registro[descripcion.Name] = valores[i]
	}
	return registro, nil
}

func clavesOrdenadas(registro recursos.Registro) []string {
	claves := make([]string, 0, len(registro))
	for clave := range registro {
		claves = append(claves, clave)
	}
	sort.Strings(claves)
	return claves
}

func agregarCondiciones(sb *strings.Builder, args *[]any, filtro recursos.Filtro) {
	if len(filtro) == 0 {
		return
	}
	sb.WriteString(" WHERE ")
	for i, columna := range clavesOrdenadas(recursos.Registro(filtro)) {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		*args = append(*args, filtro[columna])
		fmt.Fprintf(sb, "%s = $%d", columna, len(*args))
	}
}
