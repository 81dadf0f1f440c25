package linalg

import (
	"math"
	"math/cmplx"
	"strconv"
)

// Complex is an immutable complex number with float32 components.
type Complex struct {
	Re float32
	Im float32
}

var (
	// Zero is the additive identity.
	Zero = Complex{}
	// One is the multiplicative identity.
	One = Complex{Re: 1}
	// ImaginaryUnit is i.
	ImaginaryUnit = Complex{Im: 1}
)

// NewComplex returns re + im·i.
func NewComplex(re, im float32) Complex {
	return Complex{Re: re, Im: im}
}

// Real returns the complex number with the given real part and no imaginary part.
func Real(re float32) Complex {
	return Complex{Re: re}
}

// FromComplex128 narrows a complex128 to a Complex.
func FromComplex128(c complex128) Complex {
	return Complex{Re: float32(real(c)), Im: float32(imag(c))}
}

// Complex128 widens c to a complex128.
func (c Complex) Complex128() complex128 {
	return complex(float64(c.Re), float64(c.Im))
}

// Add returns c + o.
func (c Complex) Add(o Complex) Complex {
	return Complex{Re: c.Re + o.Re, Im: c.Im + o.Im}
}

// Sub returns c - o.
func (c Complex) Sub(o Complex) Complex {
	return Complex{Re: c.Re - o.Re, Im: c.Im - o.Im}
}

// Mul returns c · o.
func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Re: c.Re*o.Re - c.Im*o.Im,
		Im: c.Re*o.Im + c.Im*o.Re,
	}
}

// Scale returns c multiplied by the real factor f.
func (c Complex) Scale(f float32) Complex {
	return Complex{Re: c.Re * f, Im: c.Im * f}
}

// Div returns c / o using the conjugate over modulus-squared formula.
// Dividing by zero yields IEEE infinities or NaNs; callers that need an error
// check IsZero first.
func (c Complex) Div(o Complex) Complex {
	d := o.Modulus2()
	return Complex{
		Re: (c.Re*o.Re + c.Im*o.Im) / d,
		Im: (c.Im*o.Re - c.Re*o.Im) / d,
	}
}

// Conj returns the complex conjugate of c.
func (c Complex) Conj() Complex {
	return Complex{Re: c.Re, Im: -c.Im}
}

// Neg returns -c.
func (c Complex) Neg() Complex {
	return Complex{Re: -c.Re, Im: -c.Im}
}

// Modulus2 returns |c|².
func (c Complex) Modulus2() float32 {
	return c.Re*c.Re + c.Im*c.Im
}

// Module returns |c|.
func (c Complex) Module() float32 {
	return float32(math.Hypot(float64(c.Re), float64(c.Im)))
}

// Sqrt returns the principal square root of c.
func (c Complex) Sqrt() Complex {
	// -0 would select the lower side of the branch cut.
	if c.Im == 0 {
		c.Im = 0
	}
	return FromComplex128(cmplx.Sqrt(c.Complex128()))
}

// IsZero reports whether both components are exactly zero.
func (c Complex) IsZero() bool {
	return c.Re == 0 && c.Im == 0
}

// IsClose reports whether c and o differ by at most eps in modulus.
func (c Complex) IsClose(o Complex, eps float32) bool {
	return c.Sub(o).Modulus2() <= eps*eps
}

// String formats c as "(re, im)".
func (c Complex) String() string {
	return "(" + formatFloat(c.Re) + ", " + formatFloat(c.Im) + ")"
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
