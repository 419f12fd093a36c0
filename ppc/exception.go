package ppc

// Exception vectors.
const (
	VECTOR_SYSTEM_RESET = uint32(0x0100)
	VECTOR_EXTERNAL     = uint32(0x0500)
	VECTOR_PROGRAM      = uint32(0x0700)
	VECTOR_DECREMENTER  = uint32(0x0900)
	VECTOR_SYSCALL      = uint32(0x0c00)
)

const (
	// SRR1 bits preserved from the MSR on exception entry.
	SRR1_MSR_MASK = uint32(0x0000ff73)
	// SRR1 flag for a trap program exception.
	SRR1_TRAP = uint32(0x00020000)
	// MSR bits restored by rfi.
	RFI_MSR_MASK = uint32(0x87c0ff73)

	exceptionClear = MSR_POW | MSR_EE | MSR_PR | MSR_FP | MSR_FE0 | MSR_SE |
		MSR_BE | MSR_FE1 | MSR_IR | MSR_DR | MSR_RI
)

// poll checks for an acceptable exception at an instruction boundary.
// Priority is system reset, then external, then decrementer.
func (cpu *PPC) poll() (accepted bool) {
	defer func() {
		if accepted {
			cpu.Servicing = true
			cpu.stats.Interrupts++
		}
	}()

	if cpu.NMI {
		cpu.NMI = false
		cpu.wake()
		cpu.exception(VECTOR_SYSTEM_RESET, cpu.PC, 0)
		return true
	}

	if cpu.MSR&MSR_EE == 0 {
		return false
	}

	if cpu.INT {
		cpu.wake()
		cpu.exception(VECTOR_EXTERNAL, cpu.PC, 0)
		if cpu.vp != nil {
			// Acknowledge cycle; the selector has no meaning here.
			_ = cpu.vp.Vector(cpu)
		}
		return true
	}

	if cpu.DecPending {
		cpu.DecPending = false
		cpu.wake()
		cpu.exception(VECTOR_DECREMENTER, cpu.PC, 0)
		return true
	}

	return false
}

// wake leaves the halt state, resuming after the halting mtmsr.
func (cpu *PPC) wake() {
	if cpu.Halted {
		cpu.Halted = false
		cpu.PC += 4
	}
}

// exception enters the handler at vector.
func (cpu *PPC) exception(vector uint32, srr0 uint32, flags uint32) {
	msr := cpu.MSR

	cpu.SRR0 = srr0
	cpu.SRR1 = msr&SRR1_MSR_MASK | flags

	msr &^= exceptionClear
	if msr&MSR_ILE != 0 {
		msr |= MSR_LE
	} else {
		msr &^= MSR_LE
	}
	cpu.MSR = msr

	if msr&MSR_IP != 0 {
		vector |= 0xfff00000
	}
	cpu.PC = vector
	cpu.Reserve = false
}

// setMSR writes the machine state register. Setting MSR[POW] halts the
// core on the current instruction.
func (cpu *PPC) setMSR(v uint32) {
	cpu.MSR = v
	if v&MSR_POW != 0 {
		cpu.Halted = true
		cpu.PC = cpu.cia
	}
}

// setDEC writes the decrementer. Only a write that sets the most
// significant bit raises a decrementer exception; a zero fires on the
// next tick.
func (cpu *PPC) setDEC(v uint32) {
	old := cpu.DEC
	cpu.DEC = v
	if old&0x80000000 == 0 && v&0x80000000 != 0 {
		cpu.DecPending = true
	}
}
