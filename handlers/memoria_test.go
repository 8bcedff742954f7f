// backend/handlers/memoria_test.go
package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"backend/recursos"
)

// pasarelaMemoria implementa recursos.Gateway sobre mapas, para probar los
// manejadores sin una base de datos.
type pasarelaMemoria struct {
	mu          sync.Mutex
	tablas      map[string][]recursos.Registro
	siguienteID int
}

func nuevaPasarelaMemoria() *pasarelaMemoria {
	return &pasarelaMemoria{
		tablas:      make(map[string][]recursos.Registro),
		siguienteID: 1,
	}
}

func (p *pasarelaMemoria) Select(_ context.Context, tabla string, filtro recursos.Filtro, orden recursos.Orden, limite, desplazamiento int) ([]recursos.Registro, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	lista := make([]recursos.Registro, 0)
	for _, registro := range p.tablas[tabla] {
		if coincideFiltro(registro, filtro) {
			lista = append(lista, clonar(registro))
		}
	}

	if orden.Columna != "" {
		sort.SliceStable(lista, func(i, j int) bool {
			menor := comparar(lista[i][orden.Columna], lista[j][orden.Columna]) < 0
			if orden.Descendente {
				return !menor && comparar(lista[i][orden.Columna], lista[j][orden.Columna]) != 0
			}
			return menor
		})
	}

	if desplazamiento > 0 {
		if desplazamiento >= len(lista) {
			return []recursos.Registro{}, nil
		}
		lista = lista[desplazamiento:]
	}
	if limite > 0 && limite < len(lista) {
		lista = lista[:limite]
	}
	return lista, nil
}

func (p *pasarelaMemoria) Insert(_ context.Context, tabla string, registro recursos.Registro) (recursos.Registro, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	copia := clonar(registro)
	copia["id"] = p.siguienteID
	p.siguienteID++
	p.tablas[tabla] = append(p.tablas[tabla], copia)
	return clonar(copia), nil
}

func (p *pasarelaMemoria) Update(_ context.Context, tabla string, id int, parche recursos.Registro) (recursos.Registro, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, registro := range p.tablas[tabla] {
		if iguales(registro["id"], id) {
			for clave, valor := range parche {
				registro[clave] = valor
			}
			p.tablas[tabla][i] = registro
			return clonar(registro), nil
		}
	}
	return nil, recursos.ErrNoEncontrado
}

func (p *pasarelaMemoria) Delete(_ context.Context, tabla string, id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, registro := range p.tablas[tabla] {
		if iguales(registro["id"], id) {
			p.tablas[tabla] = append(p.tablas[tabla][:i], p.tablas[tabla][i+1:]...)
			return nil
		}
	}
	return recursos.ErrNoEncontrado
}

func (p *pasarelaMemoria) total(tabla string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tablas[tabla])
}

func clonar(registro recursos.Registro) recursos.Registro {
	copia := recursos.Registro{}
	for clave, valor := range registro {
		copia[clave] = valor
	}
	return copia
}

func coincideFiltro(registro recursos.Registro, filtro recursos.Filtro) bool {
	for columna, esperado := range filtro {
		if !iguales(registro[columna], esperado) {
			return false
		}
	}
	return true
}

func iguales(a, b any) bool {
	if fa, ok := comoFlotante(a); ok {
		if fb, ok := comoFlotante(b); ok {
			return fa == fb
		}
		return false
	}
	return a == b
}

func comparar(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}
	fa, okA := comoFlotante(a)
	fb, okB := comoFlotante(b)
	if okA && okB {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	}
	return 0
}

func comoFlotante(valor any) (float64, bool) {
	switch v := valor.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	return 0, false
}
