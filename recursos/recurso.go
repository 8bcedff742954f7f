// backend/recursos/recurso.go
package recursos

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Registro es una fila tal como viaja hacia y desde la pasarela de
// persistencia. Las claves son nombres de columna.
type Registro map[string]any

// Filtro expresa igualdades columna = valor para un listado.
type Filtro map[string]any

// Orden indica la columna y dirección de un listado.
type Orden struct {
	Columna     string
	Descendente bool
}

// Gateway es la pasarela de persistencia orientada a tablas. La
// implementación real vive en el paquete db; las pruebas usan una en memoria.
type Gateway interface {
	Select(ctx context.Context, tabla string, filtro Filtro, orden Orden, limite, desplazamiento int) ([]Registro, error)
	Insert(ctx context.Context, tabla string, registro Registro) (Registro, error)
	Update(ctx context.Context, tabla string, id int, parche Registro) (Registro, error)
	Delete(ctx context.Context, tabla string, id int) error
}

// ErrNoEncontrado se devuelve cuando el id de una mutación no existe.
var ErrNoEncontrado = errors.New("registro no encontrado")

// ErrorValidacion describe un campo requerido ausente o con un valor fuera
// de lo permitido. La operación nunca llega a la pasarela.
type ErrorValidacion struct {
	Campo  string
	Motivo string
}

func (e *ErrorValidacion) Error() string {
	if e.Campo == "" {
		return e.Motivo
	}
	return e.Campo + " " + e.Motivo
}

// ErrorAlmacenamiento envuelve cualquier fallo de la pasarela.
type ErrorAlmacenamiento struct {
	Causa error
}

func (e *ErrorAlmacenamiento) Error() string {
	return "error de almacenamiento: " + e.Causa.Error()
}

func (e *ErrorAlmacenamiento) Unwrap() error { return e.Causa }

// TipoCampo clasifica el valor esperado de una columna.
type TipoCampo int

const (
	Texto TipoCampo = iota
	Entero
	Numero
	Booleano
)

// Campo describe una columna admitida por un tipo de contenido.
type Campo struct {
	Nombre     string
	Tipo       TipoCampo
	Requerido  bool
	Defecto    any      // aplicado en la creación cuando el campo viene vacío
	Min, Max   *int     // rango inclusivo para enteros (calificaciones)
	NoNegativo bool     // montos
	Valores    []string // valores permitidos para textos tipo estado
	SoloParche bool     // ignorado en la creación; el servidor fija su valor
}

// Definicion parametriza el manejador genérico para un tipo de contenido:
// tabla, catálogo de campos, orden del listado y filtros admitidos.
type Definicion struct {
	Nombre          string   // segmento de ruta: "noticias", "sitios-turisticos"
	Tabla           string
	Campos          []Campo
	Orden           Orden
	Filtros         []string // parámetros de consulta aceptados como igualdad
	ListaFija       Filtro   // igualdades forzadas en todo listado
	CamposBusqueda  []string // columnas cubiertas por el parámetro q
	CamposParche    []string // si no está vacío, únicas columnas actualizables
	LimiteDefecto   int
	CreacionPublica bool           // el POST no exige rol (testimonios)
	SoloActualizar  bool           // solo GET y PUT (secciones de contenido)
	AlCrear         func(Registro) // valores asignados por el servidor al crear
}

// CampoPorNombre busca un campo del catálogo.
func (d Definicion) CampoPorNombre(nombre string) (Campo, bool) {
	for _, c := range d.Campos {
		if c.Nombre == nombre {
			return c, true
		}
	}
	return Campo{}, false
}

// ValidarCreacion reduce el cuerpo recibido a las columnas catalogadas,
// aplica valores por defecto, valida requeridos y normaliza tipos. Los
// campos desconocidos se descartan: solo columnas del catálogo llegan a la
// pasarela.
func (d Definicion) ValidarCreacion(cuerpo Registro) (Registro, error) {
	registro := Registro{}
	for _, c := range d.Campos {
		if c.SoloParche {
			continue
		}
		valor, presente := cuerpo[c.Nombre]
		if !presente || esVacio(valor) {
			if c.Requerido {
				return nil, &ErrorValidacion{Campo: c.Nombre, Motivo: "es requerido"}
			}
			if c.Defecto != nil {
				registro[c.Nombre] = c.Defecto
			}
			continue
		}
		normalizado, err := normalizar(c, valor)
		if err != nil {
			return nil, err
		}
		registro[c.Nombre] = normalizado
	}
	if d.AlCrear != nil {
		d.AlCrear(registro)
	}
	return registro, nil
}

// ValidarParche normaliza un parche de actualización. Los campos ausentes se
// dejan intactos; un campo requerido no puede vaciarse.
func (d Definicion) ValidarParche(cuerpo Registro) (Registro, error) {
	parche := Registro{}
	for _, c := range d.Campos {
		if len(d.CamposParche) > 0 && !contiene(d.CamposParche, c.Nombre) {
			continue
		}
		valor, presente := cuerpo[c.Nombre]
		if !presente {
			continue
		}
		if esVacio(valor) {
			if c.Requerido {
				return nil, &ErrorValidacion{Campo: c.Nombre, Motivo: "no puede quedar vacío"}
			}
			parche[c.Nombre] = nil
			continue
		}
		normalizado, err := normalizar(c, valor)
		if err != nil {
			return nil, err
		}
		parche[c.Nombre] = normalizado
	}
	if len(parche) == 0 {
		return nil, &ErrorValidacion{Motivo: "sin campos para actualizar"}
	}
	return parche, nil
}

func normalizar(c Campo, valor any) (any, error) {
	switch c.Tipo {
	case Texto:
		texto, ok := valor.(string)
		if !ok {
			return nil, &ErrorValidacion{Campo: c.Nombre, Motivo: "debe ser texto"}
		}
		if len(c.Valores) > 0 && !contiene(c.Valores, texto) {
			return nil, &ErrorValidacion{Campo: c.Nombre, Motivo: "valor no permitido"}
		}
		return texto, nil
	case Entero:
		n, ok := comoEntero(valor)
		if !ok {
			return nil, &ErrorValidacion{Campo: c.Nombre, Motivo: "debe ser un número entero"}
		}
		if c.Min != nil && n < *c.Min || c.Max != nil && n > *c.Max {
			return nil, &ErrorValidacion{
				Campo:  c.Nombre,
				Motivo: fmt.Sprintf("debe estar entre %d y %d", *c.Min, *c.Max),
			}
		}
		return n, nil
	case Numero:
		f, ok := comoNumero(valor)
		if !ok {
			return nil, &ErrorValidacion{Campo: c.Nombre, Motivo: "debe ser numérico"}
		}
		if c.NoNegativo && f < 0 {
			return nil, &ErrorValidacion{Campo: c.Nombre, Motivo: "no puede ser negativo"}
		}
		return f, nil
	case Booleano:
		b, ok := valor.(bool)
		if !ok {
			return nil, &ErrorValidacion{Campo: c.Nombre, Motivo: "debe ser booleano"}
		}
		return b, nil
	}
	return valor, nil
}

// esVacio considera vacíos nil y los textos en blanco. Un booleano false o
// un cero numérico son valores legítimos.
func esVacio(valor any) bool {
	if valor == nil {
		return true
	}
	if texto, ok := valor.(string); ok {
		return strings.TrimSpace(texto) == ""
	}
	return false
}

func comoEntero(valor any) (int, bool) {
	switch v := valor.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func comoNumero(valor any) (float64, bool) {
	switch v := valor.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func contiene(lista []string, valor string) bool {
	for _, v := range lista {
		if v == valor {
			return true
		}
	}
	return false
}
