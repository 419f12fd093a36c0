package z80

// poll evaluates the interrupt lines at an instruction boundary, and
// returns true if an interrupt was accepted.
//
// A mode 0 or mode 2 request with no vector provider is dropped and the
// line is cleared. An invalid selector is not accepted and nothing
// changes, so the request is seen again at the next boundary.
func (cpu *Z80) poll() (accepted bool) {
	defer func() {
		cpu.Servicing = accepted
		if accepted {
			cpu.stats.Interrupts++
		}
	}()

	if cpu.NMI {
		cpu.NMI = false
		cpu.enter(NMI_VECTOR)
		cpu.IFF2 = cpu.IFF1
		cpu.IFF1 = false
		return true
	}

	if cpu.EIDelay {
		cpu.EIDelay = false
		return false
	}

	if !cpu.INT || !cpu.IFF1 {
		return false
	}

	switch cpu.IM {
	case IM_0:
		if cpu.vp == nil {
			cpu.INT = false
			return false
		}
		target, ok := cpu.vp.Vector(cpu).Restart()
		if !ok {
			return false
		}
		cpu.enter(target)
	case IM_2:
		if cpu.vp == nil {
			cpu.INT = false
			return false
		}
		b, ok := cpu.vp.Vector(cpu).Byte()
		if !ok {
			return false
		}
		cpu.enter(cpu.read16(uint16(cpu.I)<<8 | uint16(b&0xfe)))
	default:
		cpu.enter(IM1_VECTOR)
		cpu.IFF1 = false
		cpu.IFF2 = false
		if cpu.vp != nil {
			cpu.vp.Vector(cpu)
		}
		return true
	}

	cpu.IFF1 = false
	cpu.IFF2 = false
	return true
}

// enter pushes the return address and jumps to target. A halted core
// returns to the instruction after the halt.
func (cpu *Z80) enter(target uint16) {
	if cpu.Halted {
		cpu.Halted = false
		cpu.PC++
	}

	cpu.incR()
	cpu.push(cpu.PC)
	cpu.PC = target
}
