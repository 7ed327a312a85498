// Package opener abre archivos con la aplicación asociada del sistema operativo.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
)

// SystemOpener usa xdg-open, open o "cmd /c start" según el sistema.
type SystemOpener struct {
	goos string
	run  func(name string, args ...string) error
}

func NewSystemOpener() *SystemOpener {
	return &SystemOpener{goos: runtime.GOOS, run: startDetached}
}

// Command devuelve el programa y argumentos que abrirían path en goos.
func Command(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		// el primer argumento entre comillas de start es el título de la ventana
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open no espera a que la aplicación termine.
func (o *SystemOpener) Open(path string) error {
	name, args := Command(o.goos, path)
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("opener: %s %s: %w", name, path, err)
	}
	return nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
